package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "hirehub",
		SessionKey:      "a-session-key-long-enough-to-pass-validation",
		SessionName:     "hirehub-session",
		UploadDir:       "./uploads/resumes",
		BaseURL:         "http://localhost:3000",
		ReapplyCooldown: 90 * 24 * time.Hour,
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Errorf("expected valid config to pass, got %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a non-mongodb URI")
	}
}

func TestValidateConfig_ShortSessionKey(t *testing.T) {
	cfg := validAppConfig()
	cfg.SessionKey = "too-short"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a short session key")
	}
}

func TestValidateConfig_DefaultSessionKeyRefusedInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.SessionKey = devSessionKey
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for the shipped session key in prod")
	}
	// Outside prod the default is tolerated; BuildHandler replaces it
	// with a per-boot random key.
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, zap.NewNop()); err != nil {
		t.Errorf("expected the shipped session key to pass outside prod, got %v", err)
	}
}

func TestValidateConfig_NegativeCooldown(t *testing.T) {
	cfg := validAppConfig()
	cfg.ReapplyCooldown = -time.Hour
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a negative reapply cooldown")
	}
}
