package config

import (
	"strings"
	"testing"
	"time"
)

// setRequiredEnv は必須環境変数をテスト用の値に設定する。
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blogman_test?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BASE_URL", "http://localhost:8080")
}

// TestLoad_RequiredFields は必須環境変数が読み込まれることを検証する。
func TestLoad_RequiredFields(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DatabaseURL != "postgres://localhost:5432/blogman_test?sslmode=disable" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

// TestLoad_MissingRequired_ReturnsError は必須環境変数の欠落でエラーになることを検証する。
func TestLoad_MissingRequired_ReturnsError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when JWT_SECRET is missing")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

// TestLoad_Defaults はオプション項目のデフォルト値を検証する。
func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.HashMaxConcurrent != 4 {
		t.Errorf("HashMaxConcurrent = %d, want 4", cfg.HashMaxConcurrent)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}

// TestLoad_CookieSecure_FollowsBaseURLScheme はCookieSecureがBASE_URLのスキームに従うことを検証する。
func TestLoad_CookieSecure_FollowsBaseURLScheme(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    bool
	}{
		{"https", "https://blog.example.com", true},
		{"http", "http://localhost:8080", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("BASE_URL", tt.baseURL)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.CookieSecure != tt.want {
				t.Errorf("CookieSecure = %v, want %v", cfg.CookieSecure, tt.want)
			}
		})
	}
}

// TestLoad_Overrides は環境変数でデフォルト値を上書きできることを検証する。
func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
}

// TestLoad_InvalidOptionalValue_FallsBack は不正な値がデフォルトにフォールバックすることを検証する。
func TestLoad_InvalidOptionalValue_FallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("TOKEN_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want default 10", cfg.BcryptCost)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want default 1h", cfg.TokenTTL)
	}
}
