package server

import (
	"fmt"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// PlanCacheSeconds is how long a built reconcile plan is served before rebuilding.
	PlanCacheSeconds int `mapstructure:"plan_cache_seconds" default:"30"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// PlanCacheTTL returns the plan cache lifetime. Zero or negative disables caching.
func (c Config) PlanCacheTTL() time.Duration {
	if c.PlanCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.PlanCacheSeconds) * time.Second
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}

func (c Config) String() string {
	return fmt.Sprintf("port=%s auth=%t plan_cache=%s", c.Port, c.AuthEnabled(), c.PlanCacheTTL())
}
