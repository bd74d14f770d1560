package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds every knob the crawler, cleanup job and API read from the
// environment. Each binary loads the same struct; unused fields keep their
// defaults.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB" envDefault:"crawler_data"`

	// DataDir is the root under which the images/ tree is written. The API
	// serves this tree statically, so crawler and API must agree on it.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	DeepLAPIKey  string `env:"DEEPL_API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// ExchangeRate overrides the FX API with a fixed JPY->USD rate when > 0.
	ExchangeRate float64 `env:"JPY_USD_RATE" envDefault:"0"`
	FxRateURL    string  `env:"FX_RATE_URL" envDefault:"https://open.er-api.com/v6/latest/JPY"`

	FetchMaxRetries int           `env:"FETCH_MAX_RETRIES" envDefault:"5"`
	FetchBackoff    time.Duration `env:"FETCH_BACKOFF" envDefault:"30s"`
	FetchDelay      time.Duration `env:"FETCH_DELAY" envDefault:"2s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	Parallelism int           `env:"CRAWL_PARALLELISM" envDefault:"4"`
	RunTimeout  time.Duration `env:"RUN_TIMEOUT" envDefault:"2h"`

	// CleanupRetention is how long a listing may stay unseen before the
	// cleanup job removes it.
	CleanupRetention   time.Duration `env:"CLEANUP_RETENTION" envDefault:"336h"`
	CleanupVerifyLinks bool          `env:"CLEANUP_VERIFY_LINKS" envDefault:"true"`
}

// LoadConfig parses the environment into a Config. Missing variables fall
// back to the defaults above.
func LoadConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}
	return cfg
}
