package feed

// Config holds configuration for the donation platform feed.
type Config struct {
	// Endpoint is the donation platform's supports listing URL.
	Endpoint string `mapstructure:"endpoint" default:""`
	// ApiKey is the static key sent in the 'key' header.
	ApiKey string `mapstructure:"api_key" default:""`
	// PageSize is how many recent donations one reconciliation pass sees.
	// The platform offers no durable cursor, so donations older than this
	// window age out and become unreconcilable.
	PageSize int `mapstructure:"page_size" default:"5"`
	// TimeoutSeconds is the request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// KoinRate is the fixed exchange divisor: koin = amount / rate, floored.
	KoinRate int64 `mapstructure:"koin_rate" default:"15"`
}
