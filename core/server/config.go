package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Locale is the language of the loaded definition snapshot (en, ja).
	Locale string `mapstructure:"locale" default:"en"`
}

const (
	LocaleEnglish  = "en"
	LocaleJapanese = "ja"
)

// IsValidLocale checks if the configured snapshot locale is supported.
func (c Config) IsValidLocale() bool {
	switch c.Locale {
	case LocaleEnglish, LocaleJapanese:
		return true
	default:
		return false
	}
}
