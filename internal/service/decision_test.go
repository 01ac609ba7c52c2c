package service

import (
	"testing"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		confidence float64
		cfg        domain.TriageConfig
		want       bool
	}{
		{
			name:       "above threshold",
			confidence: 0.9,
			cfg:        domain.TriageConfig{AutoCloseEnabled: true, ConfidenceThreshold: 0.75},
			want:       true,
		},
		{
			name:       "exactly at threshold",
			confidence: 0.75,
			cfg:        domain.TriageConfig{AutoCloseEnabled: true, ConfidenceThreshold: 0.75},
			want:       true,
		},
		{
			name:       "below threshold",
			confidence: 0.7499,
			cfg:        domain.TriageConfig{AutoCloseEnabled: true, ConfidenceThreshold: 0.75},
			want:       false,
		},
		{
			name:       "auto-close disabled overrides confidence",
			confidence: 0.99,
			cfg:        domain.TriageConfig{AutoCloseEnabled: false, ConfidenceThreshold: 0.75},
			want:       false,
		},
		{
			name:       "zero threshold closes everything when enabled",
			confidence: 0.0,
			cfg:        domain.TriageConfig{AutoCloseEnabled: true, ConfidenceThreshold: 0.0},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.confidence, tt.cfg); got != tt.want {
				t.Errorf("Decide(%v, %+v) = %v, want %v", tt.confidence, tt.cfg, got, tt.want)
			}
		})
	}
}
