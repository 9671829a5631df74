package search

// Config holds search settings.
type Config struct {
	// Limit is the maximum number of results per search, capped at 20.
	Limit int `mapstructure:"limit" default:"20"`
}
