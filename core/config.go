package core

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

// Config crossmargin config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// logrus level name, default info
	LogLevel string `json:"log_level"`
	// seconds the account action cooldown stays armed, default 20 minutes
	CooldownSeconds int64 `json:"cooldown_seconds"`
}

// Cooldown account action cooldown window
func (a App) Cooldown() time.Duration {
	if a.CooldownSeconds <= 0 {
		return 20 * time.Minute
	}
	return time.Duration(a.CooldownSeconds) * time.Second
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// seconds after which a price is degraded to caution
	CautionAfterSeconds int64 `json:"caution_after_seconds"`
	// seconds after which a price is a bad source
	BadAfterSeconds int64 `json:"bad_after_seconds"`
}

// CautionAfter staleness window before a price is degraded to caution
func (p PriceOracle) CautionAfter() time.Duration {
	if p.CautionAfterSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(p.CautionAfterSeconds) * time.Second
}

// BadAfter staleness window before a price is rejected outright
func (p PriceOracle) BadAfter() time.Duration {
	if p.BadAfterSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(p.BadAfterSeconds) * time.Second
}

// Validate validate config
func (c *Config) Validate() error {
	if c.App.LogLevel != "" && !govalidator.IsIn(c.App.LogLevel, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid log level: %s", c.App.LogLevel)
	}

	if c.PriceOracle.EndPoint != "" && !govalidator.IsURL(c.PriceOracle.EndPoint) {
		return fmt.Errorf("invalid price oracle endpoint: %s", c.PriceOracle.EndPoint)
	}

	if c.PriceOracle.BadAfter() < c.PriceOracle.CautionAfter() {
		return fmt.Errorf("price oracle bad_after_seconds below caution_after_seconds")
	}

	return nil
}
