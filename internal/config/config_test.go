package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.GeminiTransport != "rest" {
		t.Fatalf("expected rest transport, got %s", cfg.GeminiTransport)
	}
	if cfg.ChatHistoryLimit != 50 {
		t.Fatalf("expected history limit 50, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.Debug() {
		t.Fatalf("INFO level should not be debug")
	}
}

func TestFromEnvRequiresKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY")
	}

	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("JWT_SECRET", "")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestFromEnvRejectsUnknownTransport(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_TRANSPORT", "grpc")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestFromEnvIntFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CHAT_HISTORY_LIMIT", "abc")
	t.Setenv("CHAT_QUEUE_DEPTH", "0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.ChatHistoryLimit != 50 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.ChatHistoryLimit)
	}
	if cfg.ChatQueueDepth != 1 {
		t.Fatalf("queue depth should be clamped to 1, got %d", cfg.ChatQueueDepth)
	}
}
