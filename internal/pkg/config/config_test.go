package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAILS", "a@example.com,b@example.com")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Sync.QuietPeriod != 2*time.Second || cfg.NotificationDuration != 3*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Limits.Chat != 5 || cfg.Limits.Speech != 1 || cfg.Limits.FengShui != 1 {
		t.Fatalf("unexpected limits: %+v", cfg.Limits)
	}
	if cfg.Sync.ConflictCheck {
		t.Fatalf("conflict check must default to off")
	}
	if len(cfg.AdminEmails) != 2 {
		t.Fatalf("expected 2 admin emails, got %v", cfg.AdminEmails)
	}
}
