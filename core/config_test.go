package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	var cfg Config
	assert.Nil(t, cfg.Validate())

	cfg.App.LogLevel = "warn"
	assert.Nil(t, cfg.Validate())

	cfg.App.LogLevel = "loud"
	assert.NotNil(t, cfg.Validate())
	cfg.App.LogLevel = ""

	cfg.PriceOracle.EndPoint = "not a url"
	assert.NotNil(t, cfg.Validate())
	cfg.PriceOracle.EndPoint = "https://oracle.example.com"
	assert.Nil(t, cfg.Validate())

	// a price must not go bad before it even degrades to caution
	cfg.PriceOracle.CautionAfterSeconds = 600
	cfg.PriceOracle.BadAfterSeconds = 300
	assert.NotNil(t, cfg.Validate())
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, 20*time.Minute, cfg.App.Cooldown())
	assert.Equal(t, 5*time.Minute, cfg.PriceOracle.CautionAfter())
	assert.Equal(t, time.Hour, cfg.PriceOracle.BadAfter())

	cfg.App.CooldownSeconds = 90
	assert.Equal(t, 90*time.Second, cfg.App.Cooldown())
}
