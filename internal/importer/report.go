package importer

import "go.uber.org/zap"

// Report summarises one import run.
type Report struct {
	Rows         int      `json:"rows"`
	Added        []string `json:"added"`
	Updated      []string `json:"updated"`
	PriceChanged []string `json:"priceChanged,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

func (r *Report) warn(logger *zap.Logger, msg string, fields ...zap.Field) {
	r.Warnings = append(r.Warnings, msg)
	logger.Warn(msg, fields...)
}
