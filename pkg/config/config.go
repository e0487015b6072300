package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Discord  DiscordConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	Payments PaymentsConfig
	Ops      OpsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREBOT_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"STOREBOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREBOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DiscordConfig struct {
	Token string `envconfig:"STOREBOT_DISCORD_TOKEN" required:"true"`

	// TriggerRoles maps a mentioned role ID to a catalog category key,
	// e.g. "123456:games,987654:tools".
	TriggerRoles map[string]string `envconfig:"STOREBOT_DISCORD_TRIGGER_ROLES" required:"true"`
}

type CatalogConfig struct {
	Path string `envconfig:"STOREBOT_CATALOG_PATH" default:"catalog.json"`
}

type CartConfig struct {
	MaxQuantity      int           `envconfig:"STOREBOT_CART_MAX_QUANTITY" default:"99"`
	PageSize         int           `envconfig:"STOREBOT_CART_PAGE_SIZE" default:"25"`
	MaxSelect        int           `envconfig:"STOREBOT_CART_MAX_SELECT" default:"10"`
	AutoCloseOnEmpty bool          `envconfig:"STOREBOT_CART_AUTO_CLOSE_ON_EMPTY" default:"true"`
	IdleTTL          time.Duration `envconfig:"STOREBOT_CART_IDLE_TTL" default:"6h"`
	SweepInterval    time.Duration `envconfig:"STOREBOT_CART_SWEEP_INTERVAL" default:"15m"`
}

// platformPageLimit is the hard cap the messaging platform imposes on
// select-menu options per prompt.
const platformPageLimit = 25

func (c *CartConfig) normalize() error {
	if c.MaxQuantity < 1 {
		return fmt.Errorf("cart max quantity must be at least 1")
	}
	if c.PageSize < 1 || c.PageSize > platformPageLimit {
		return fmt.Errorf("cart page size must be within [1, %d]", platformPageLimit)
	}
	if c.MaxSelect < 1 {
		return fmt.Errorf("cart max select must be at least 1")
	}
	if c.MaxSelect > c.PageSize {
		c.MaxSelect = c.PageSize
	}
	return nil
}

type PaymentsConfig struct {
	PayPalEmail     string `envconfig:"STOREBOT_PAYMENTS_PAYPAL_EMAIL" required:"true"`
	LitecoinAddress string `envconfig:"STOREBOT_PAYMENTS_LITECOIN_ADDRESS" required:"true"`
	CardNote        string `envconfig:"STOREBOT_PAYMENTS_CARD_NOTE" default:"Click the Purchase button below, enter exactly the quoted total, and complete payment."`
}

type OpsConfig struct {
	Enabled bool   `envconfig:"STOREBOT_OPS_ENABLED" default:"true"`
	Addr    string `envconfig:"STOREBOT_OPS_ADDR" default:":9090"`
}
