package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Tables TablesConfig
	Menu   MenuConfig
	Hub    HubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DESR_APP_ENV" required:"true"`
	Port         string `envconfig:"DESR_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"DESR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DESR_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"DESR_AUTO_MIGRATE" default:"true"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"DESR_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"DESR_DB_PATH" default:"./data/desr.db"`
	DSN    string `envconfig:"DESR_DB_DSN"`

	MaxOpenConns    int           `envconfig:"DESR_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"DESR_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"DESR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DESR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the store runs on the embedded sqlite driver.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		if db.Path == "" {
			return fmt.Errorf("either %s or %s is required for the sqlite driver", EnvDBDSN, EnvDBPath)
		}
		db.DSN = db.Path
		return nil
	}
	return fmt.Errorf("%s is required for driver %q", EnvDBDSN, db.Driver)
}

type TablesConfig struct {
	Count int `envconfig:"DESR_TABLE_COUNT" default:"17"`
}

type MenuConfig struct {
	CurrencySymbol  string `envconfig:"DESR_CURRENCY_SYMBOL" default:"¥"`
	DefaultLanguage string `envconfig:"DESR_DEFAULT_LANGUAGE" default:"en"`
}

type HubConfig struct {
	SendBuffer   int           `envconfig:"DESR_HUB_SEND_BUFFER" default:"256"`
	WriteTimeout time.Duration `envconfig:"DESR_HUB_WRITE_TIMEOUT" default:"10s"`
	PongTimeout  time.Duration `envconfig:"DESR_HUB_PONG_TIMEOUT" default:"60s"`
}
