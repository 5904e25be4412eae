package domain

// Config holds the runtime configuration loaded from the config file,
// environment variables and flags.
type Config struct {
	WikidataAPIURL    string `toml:"wikidata_api_url" mapstructure:"wikidata_api_url"`
	CommonsAPIURL     string `toml:"commons_api_url" mapstructure:"commons_api_url"`
	UserAgent         string `toml:"user_agent" mapstructure:"user_agent"`
	ThumbWidth        int    `toml:"thumb_width" mapstructure:"thumb_width"`
	Concurrency       int    `toml:"concurrency" mapstructure:"concurrency"`
	ContinueOnError   bool   `toml:"continue_on_error" mapstructure:"continue_on_error"`
	DiscordWebhookURL string `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
}
