package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/varoOP/bandpix/internal/domain"
)

const (
	defaultWikidataAPIURL = "https://www.wikidata.org/w/api.php"
	defaultCommonsAPIURL  = "https://commons.wikimedia.org/w/api.php"
	defaultUserAgent      = "bandpix (https://github.com/varoOP/bandpix)"
	defaultThumbWidth     = 500
	defaultConcurrency    = 4
)

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (BANDPIX_*)
// 3. Flags bound to viper by the cmd layer
func Load() (*domain.Config, error) {
	cfg := &domain.Config{
		WikidataAPIURL:    viper.GetString("wikidata_api_url"),
		CommonsAPIURL:     viper.GetString("commons_api_url"),
		UserAgent:         viper.GetString("user_agent"),
		ThumbWidth:        viper.GetInt("thumb_width"),
		Concurrency:       viper.GetInt("concurrency"),
		DiscordWebhookURL: viper.GetString("discord_webhook_url"),
	}

	if cfg.WikidataAPIURL == "" {
		cfg.WikidataAPIURL = defaultWikidataAPIURL
	}
	if cfg.CommonsAPIURL == "" {
		cfg.CommonsAPIURL = defaultCommonsAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.ThumbWidth <= 0 {
		cfg.ThumbWidth = defaultThumbWidth
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}

	// Default to per-entity failure handling; continue_on_error=false makes
	// one hard metadata failure abort the whole batch.
	if viper.IsSet("continue_on_error") {
		cfg.ContinueOnError = viper.GetBool("continue_on_error")
	} else {
		cfg.ContinueOnError = true
	}

	if cfg.ThumbWidth > 4000 {
		return nil, fmt.Errorf("thumb_width %d is out of range (max 4000)", cfg.ThumbWidth)
	}

	return cfg, nil
}
