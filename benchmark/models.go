package main

import "time"

type GenerateRequest struct {
	Prompt string       `json:"prompt"`
	Image  *InlineImage `json:"image,omitempty"`
}

type InlineImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

type BenchResult struct {
	File     string
	Route    string
	Duration time.Duration
	Status   int
	Err      error
	Size     int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}
