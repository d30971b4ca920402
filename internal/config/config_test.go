package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_DefaultsApplied(t *testing.T) {
	cfg, err := Parse([]byte("slack:\n  token: xoxb-test\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Jenkins.RefreshSchedule != "@every 10m" {
		t.Errorf("RefreshSchedule = %q", cfg.Jenkins.RefreshSchedule)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("Metrics.Addr = %q", cfg.Metrics.Addr)
	}
}

func TestParse_MissingSlackToken(t *testing.T) {
	_, err := Parse([]byte("logging:\n  level: debug\n"))
	if err == nil || !strings.Contains(err.Error(), "slack.token") {
		t.Errorf("err = %v, want missing slack.token", err)
	}
}

func TestParse_JenkinsValidation(t *testing.T) {
	t.Run("enabled without url", func(t *testing.T) {
		_, err := Parse([]byte("slack:\n  token: xoxb-test\njenkins:\n  enabled: true\n"))
		if err == nil || !strings.Contains(err.Error(), "jenkins.url") {
			t.Errorf("err = %v, want jenkins.url error", err)
		}
	})

	t.Run("non-http url", func(t *testing.T) {
		_, err := Parse([]byte("slack:\n  token: xoxb-test\njenkins:\n  enabled: true\n  url: jenkins.local\n"))
		if err == nil {
			t.Error("expected error for non-http url")
		}
	})

	t.Run("disabled needs no url", func(t *testing.T) {
		if _, err := Parse([]byte("slack:\n  token: xoxb-test\njenkins:\n  enabled: false\n")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestParse_UnknownKeysRejected(t *testing.T) {
	_, err := Parse([]byte("slack:\n  token: xoxb-test\n  tokne_typo: oops\n"))
	if err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SLACK_TOKEN", "xoxb-from-env")

	path := filepath.Join(t.TempDir(), "bot.yaml")
	content := "slack:\n  token: ${TEST_SLACK_TOKEN}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Slack.Token != "xoxb-from-env" {
		t.Errorf("Token = %q, want env-expanded value", cfg.Slack.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
