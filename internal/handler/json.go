package handler

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
)

// writeJSON commits the status before encoding, so an encode failure can
// only be logged.
func writeJSON(w http.ResponseWriter, logger logrus.FieldLogger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(v); err != nil {
		logger.WithField("status", status).WithError(err).Error("failed to encode response")
	}
}
