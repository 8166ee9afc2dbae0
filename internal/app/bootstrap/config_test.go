package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "collabhub",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		JWTSecret:        devJWTSecret,
		JWTIssuer:        "collabhub",
		JWTTTL:           24 * time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mut     func(*AppConfig)
		wantErr string
	}{
		{"defaults accepted in dev", dev, func(*AppConfig) {}, ""},
		{"bad mongo uri", dev, func(c *AppConfig) { c.MongoURI = "postgres://nope" }, "invalid MongoDB URI"},
		{"empty database", dev, func(c *AppConfig) { c.MongoDatabase = "" }, "mongo_database"},
		{"min pool above max", dev, func(c *AppConfig) { c.MongoMinPoolSize = 200 }, "mongo_min_pool_size"},
		{"zero ttl", dev, func(c *AppConfig) { c.JWTTTL = 0 }, "jwt_ttl"},
		{"dev secret in prod", prod, func(*AppConfig) {}, "must be set in production"},
		{"short secret in prod", prod, func(c *AppConfig) { c.JWTSecret = "too-short" }, "at least 32"},
		{"strong secret in prod", prod, func(c *AppConfig) { c.JWTSecret = strings.Repeat("k", 40) }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mut(&cfg)
			err := ValidateConfig(tt.core, cfg, zap.NewNop())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
