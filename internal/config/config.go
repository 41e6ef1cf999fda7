package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSourceURL is the SUEZ Australia location map endpoint.
const DefaultSourceURL = "https://www.suez.com.au/en-AU/api/LocationMap/InitMap" +
	"?idMap={629C6BF1-8BD9-456D-BF49-9B1E24AFC1B6}"

// DefaultOutputPath is the CSV file written in the working directory.
const DefaultOutputPath = "suez_services_raw_data.csv"

// Config holds the configuration settings for the scraper.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - SourceURL: The location map endpoint to fetch.
// - OutputPath: The CSV file the merged records are written to.
// - HTTPTimeout: Upper bound for the fetch; zero disables it.
// - PushgatewayURL: Prometheus Pushgateway address; empty disables the push.
type Config struct {
	Env            string        `yaml:"env"`             // Env is the current environment: local, dev, prod.
	SourceURL      string        `yaml:"source_url"`      // SourceURL is the endpoint returning the map document.
	OutputPath     string        `yaml:"output_path"`     // OutputPath is the CSV destination.
	HTTPTimeout    time.Duration `yaml:"http_timeout"`    // HTTPTimeout bounds the single GET request.
	PushgatewayURL string        `yaml:"pushgateway_url"` // PushgatewayURL receives run metrics when set.
}

// MustLoad loads the configuration from the environment (and an optional .env file)
// and returns a Config struct. It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.AutomaticEnv()
	vpr.SetDefault("SUEZ_ENV", "production")
	vpr.SetDefault("SUEZ_SOURCE_URL", DefaultSourceURL)
	vpr.SetDefault("SUEZ_OUTPUT_PATH", DefaultOutputPath)
	vpr.SetDefault("SUEZ_HTTP_TIMEOUT", "0s")
	vpr.SetDefault("SUEZ_PUSHGATEWAY_URL", "")

	timeout, err := time.ParseDuration(vpr.GetString("SUEZ_HTTP_TIMEOUT"))
	if err != nil || timeout < 0 {
		panic("failed to parse http timeout from configuration")
	}

	sourceURL := vpr.GetString("SUEZ_SOURCE_URL")
	if sourceURL == "" {
		panic("source url must not be empty")
	}

	outputPath := vpr.GetString("SUEZ_OUTPUT_PATH")
	if outputPath == "" {
		panic("output path must not be empty")
	}

	return &Config{
		Env:            vpr.GetString("SUEZ_ENV"),
		SourceURL:      sourceURL,
		OutputPath:     outputPath,
		HTTPTimeout:    timeout,
		PushgatewayURL: vpr.GetString("SUEZ_PUSHGATEWAY_URL"),
	}
}
