// Package server holds the HTTP server configuration and constants.
//
// While the start command handles the server startup, this package defines
// the configuration structure and valid values for server settings, such as
// the supported snapshot locales.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, and the locale of the
// definition snapshot being served (en, ja).
package server
