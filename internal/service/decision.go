package service

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Decide applies the auto-close gate. The threshold comparison is inclusive:
// a confidence exactly at the threshold auto-closes. The config value is read
// fresh by the caller at decision time, never cached.
func Decide(confidence float64, cfg domain.TriageConfig) bool {
	return cfg.AutoCloseEnabled && confidence >= cfg.ConfidenceThreshold
}
