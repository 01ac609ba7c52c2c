package service

import (
	"context"
	"testing"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestConfigGet_DefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	svc := NewConfigService(&fakeConfigRepo{})

	cfg, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := domain.DefaultTriageConfig()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestConfigUpdate_Partial(t *testing.T) {
	t.Parallel()

	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo)

	cfg, err := svc.Update(context.Background(), ConfigUpdateInput{ConfidenceThreshold: floatPtr(0.9)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cfg.ConfidenceThreshold != 0.9 {
		t.Errorf("threshold = %v, want 0.9", cfg.ConfidenceThreshold)
	}
	if !cfg.AutoCloseEnabled || cfg.SLAHours != 24 {
		t.Errorf("untouched fields changed: %+v", cfg)
	}

	cfg, err = svc.Update(context.Background(), ConfigUpdateInput{AutoCloseEnabled: boolPtr(false), SLAHours: intPtr(48)})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if cfg.AutoCloseEnabled || cfg.SLAHours != 48 || cfg.ConfidenceThreshold != 0.9 {
		t.Errorf("config after second update = %+v", cfg)
	}

	persisted, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if persisted != cfg {
		t.Errorf("persisted config = %+v, want %+v", persisted, cfg)
	}
}

func TestConfigUpdate_Validation(t *testing.T) {
	t.Parallel()

	svc := NewConfigService(&fakeConfigRepo{})

	if _, err := svc.Update(context.Background(), ConfigUpdateInput{ConfidenceThreshold: floatPtr(1.5)}); err == nil {
		t.Error("expected validation error for threshold above 1")
	}
	if _, err := svc.Update(context.Background(), ConfigUpdateInput{ConfidenceThreshold: floatPtr(-0.1)}); err == nil {
		t.Error("expected validation error for negative threshold")
	}
	if _, err := svc.Update(context.Background(), ConfigUpdateInput{SLAHours: intPtr(0)}); err == nil {
		t.Error("expected validation error for zero sla hours")
	}
}
