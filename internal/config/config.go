package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string        `envconfig:"BOT_TOKEN" required:"true"`
	DBPath       string        `envconfig:"DB_PATH" default:"./data/hiomo.db"`
	RestaurantID string        `envconfig:"RESTAURANT_ID" default:"89"`
	MenuBaseURL  string        `envconfig:"MENU_BASE_URL" default:"https://www.sodexo.fi/ruokalistat/output/daily_json"`
	TZName       string        `envconfig:"TZ_NAME" default:"Europe/Helsinki"` // IANA zone the 10:30 schedule runs in
	RunMode      string        `envconfig:"RUN_MODE" default:"polling"`        // polling|webhook (MVP: polling)
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`          // debug|info|warn|error
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8080"`         // healthz
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`       // menu provider request budget
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
