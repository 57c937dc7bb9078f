package config

import (
	"testing"
	"time"
)

// TestValidate_AppliesDefaults verifies that Validate fills the default port
// and request timeout when they are not explicitly set.
func TestValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("unexpected default port: %d", cfg.Port)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.RequestTimeout)
	}
	if cfg.EnableDocs {
		t.Fatal("docs must be disabled by default")
	}
}

// TestValidate_RejectsBadValues verifies the bounds checks.
func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"port too large", Config{Port: 70000}},
		{"negative port", Config{Port: -1}},
		{"negative timeout", Config{Port: 3000, RequestTimeout: -time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestLoad_ReadsEnvironment verifies the NAUTILUS_ environment mapping.
func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("NAUTILUS_PORT", "8080")
	t.Setenv("NAUTILUS_USE_SWAGGER", "true")
	t.Setenv("NAUTILUS_REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if !cfg.EnableDocs {
		t.Fatal("EnableDocs should be set")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.RequestTimeout)
	}
}
