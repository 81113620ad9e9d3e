// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("CRON_SECRET", "cron-token")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.CronSecret != "cron-token" {
		t.Errorf("expected cron secret from env, got %q", cfg.CronSecret)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("expected SMTP port 2525, got %d", cfg.SMTPPort)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("unexpected default base URL %q", cfg.BaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CRON_SECRET", "from-env")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-cron-secret", "from-cli"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.CronSecret != "from-cli" {
		t.Errorf("CLI should override env: expected from-cli, got %q", cfg.CronSecret)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_CronSecretOptional(t *testing.T) {
	t.Setenv("CRON_SECRET", "")

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CronSecret != "" {
		t.Errorf("expected unconfigured cron secret, got %q", cfg.CronSecret)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing database", []string{"-admin-salt", "s1"}, nil},
		{"missing admin salt", []string{"-d", "file:test.db"}, nil},
		{"bad database type", []string{"-d", "x", "-admin-salt", "s1", "-t", "mysql"}, nil},
		{"bad port env", []string{"-d", "x", "-admin-salt", "s1"}, map[string]string{"PORT": "abc"}},
		{"bad smtp port", []string{"-d", "x", "-admin-salt", "s1"}, map[string]string{"SMTP_PORT": "abc"}},
		{"bad smtp timeout", []string{"-d", "x", "-admin-salt", "s1"}, map[string]string{"SMTP_TIMEOUT": "soon"}},
		{"relative base url", []string{"-d", "x", "-admin-salt", "s1", "-base-url", "meet.example.com"}, nil},
		{"base url without host", []string{"-d", "x", "-admin-salt", "s1", "-base-url", "https://"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("ADMIN_KEY_SALT", "")
			t.Setenv("PORT", "")
			t.Setenv("BASE_URL", "")
			t.Setenv("SMTP_PORT", "")
			t.Setenv("SMTP_TIMEOUT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDeliveryEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_TIMEOUT", "")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	var cfg Config
	if err := LoadDeliveryEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.SMTPHost != "smtp.example.com" || cfg.SMTPPort != 587 {
		t.Errorf("unexpected SMTP settings %q:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.MailFrom != "noreply@quickly-meet.local" {
		t.Errorf("expected default sender, got %q", cfg.MailFrom)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("expected redis URL from env, got %q", cfg.RedisURL)
	}

	if cfg.SMTPTimeout != 0 {
		t.Errorf("expected mailer default timeout, got %v", cfg.SMTPTimeout)
	}

	t.Setenv("SMTP_TIMEOUT", "45s")
	if err := LoadDeliveryEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.SMTPTimeout != 45*time.Second {
		t.Errorf("expected 45s SMTP timeout, got %v", cfg.SMTPTimeout)
	}

	t.Setenv("SMTP_PORT", "smtp")
	if err := LoadDeliveryEnv(&cfg); err == nil {
		t.Error("expected error for non-numeric SMTP_PORT")
	}
}

func TestValidateBaseURL(t *testing.T) {
	valid := []string{"https://meet.example.com", "http://localhost:3318", "https://example.com/meet"}
	for _, base := range valid {
		if err := ValidateBaseURL(base); err != nil {
			t.Errorf("ValidateBaseURL(%q) = %v", base, err)
		}
	}

	invalid := []string{"", "meet.example.com", "/invite", "ftp://example.com", "https://", "http://[::1"}
	for _, base := range invalid {
		if err := ValidateBaseURL(base); err == nil {
			t.Errorf("ValidateBaseURL(%q) should fail", base)
		}
	}
}
