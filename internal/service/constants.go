package service

const (
	VariantRaw  = "raw"
	VariantText = "text"
)

const generateContentURLTemplate = "%s/%s/models/%s:generateContent"
