package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "4004" {
		t.Errorf("expected port 4004, got %s", cfg.Port)
	}
	if cfg.CRM.EmptyPolicy != "empty" {
		t.Errorf("expected empty policy outside production, got %s", cfg.CRM.EmptyPolicy)
	}
	if cfg.CRM.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.CRM.Timeout)
	}
	if cfg.Cache.Driver != "memory" || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
}

func TestLoad_ProductionFailsOnEmpty(t *testing.T) {
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CRM.EmptyPolicy != "fail" {
		t.Errorf("expected fail policy in production, got %s", cfg.CRM.EmptyPolicy)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction")
	}
}

func TestLoad_ExplicitPolicyNormalized(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CRM_EMPTY_POLICY", "Placeholder")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CRM.EmptyPolicy != "placeholder" {
		t.Errorf("expected placeholder, got %s", cfg.CRM.EmptyPolicy)
	}
}

func TestLoad_PlaceholderRefusedInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CRM_EMPTY_POLICY", "placeholder")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "production") {
		t.Errorf("expected production error, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"db_driver", "DB_DRIVER", "mysql", "DB_DRIVER"},
		{"empty_policy", "CRM_EMPTY_POLICY", "retry", "CRM_EMPTY_POLICY"},
		{"cache_driver", "CACHE_DRIVER", "memcached", "CACHE_DRIVER"},
		{"timeout", "CRM_TIMEOUT", "0s", "CRM_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "risks", DBSSLMode: "require"}

	if got := cfg.DSN(); got != "host=db port=5433 user=u password=p dbname=risks sslmode=require" {
		t.Errorf("unexpected DSN %q", got)
	}
	if got := cfg.MigrationURL(); got != "postgres://u:p@db:5433/risks?sslmode=require" {
		t.Errorf("unexpected migration URL %q", got)
	}
}
