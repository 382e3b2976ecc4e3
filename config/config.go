package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds all application configuration. Values come from defaults,
// an optional config.yaml, an optional .env file and TOURISM_* env vars,
// in increasing order of precedence.
type Config struct {
	Browser  BrowserConfig  `mapstructure:"browser"`
	Maps     MapsConfig     `mapstructure:"maps"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	Export   ExportConfig   `mapstructure:"export"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// BrowserConfig configures the headless Chrome process.
type BrowserConfig struct {
	Headless              bool   `mapstructure:"headless"`
	ChromeBin             string `mapstructure:"chrome_bin"`
	UserAgent             string `mapstructure:"user_agent"`
	WaitTimeoutSecs       int    `mapstructure:"wait_timeout_secs"`
	NavigationTimeoutSecs int    `mapstructure:"navigation_timeout_secs"`
}

// MapsConfig points the scrape session at the maps web UI.
type MapsConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	DefaultLocation string `mapstructure:"default_location"`
}

// PipelineConfig configures the search → reviews → analysis run.
type PipelineConfig struct {
	Concurrency      int `mapstructure:"concurrency"`
	RetryAttempts    int `mapstructure:"retry_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms"`
}

// KeywordsConfig locates the polarity keyword lists. An empty path selects
// the built-in lists.
type KeywordsConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig sets where report artifacts are written.
type ExportConfig struct {
	CSVPath   string `mapstructure:"csv_path"`
	ChartPath string `mapstructure:"chart_path"`
}

// ServerConfig configures the HTTP front.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env (if present), config.yaml (if present) and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TOURISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.Browser.ChromeBin == "" {
		cfg.Browser.ChromeBin = os.Getenv("CHROME_BIN")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.chrome_bin", "")
	v.SetDefault("browser.user_agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("browser.wait_timeout_secs", 10)
	v.SetDefault("browser.navigation_timeout_secs", 45)
	v.SetDefault("maps.base_url", "https://www.google.com/maps")
	v.SetDefault("maps.default_location", "Aguascalientes, México")
	v.SetDefault("pipeline.concurrency", 3)
	v.SetDefault("pipeline.retry_attempts", 1)
	v.SetDefault("pipeline.retry_base_delay_ms", 1000)
	v.SetDefault("keywords.path", "")
	v.SetDefault("export.csv_path", "./output/reviews.csv")
	v.SetDefault("export.chart_path", "./output/chart.html")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// WaitTimeout is the bound on waiting for an expected element.
func (c BrowserConfig) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutSecs) * time.Second
}

// NavigationTimeout bounds one whole scrape operation.
func (c BrowserConfig) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutSecs) * time.Second
}

// RetryBaseDelay is the first back-off delay between pipeline retries.
func (c PipelineConfig) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMs) * time.Millisecond
}
