package cleanup

import (
	"time"

	"github.com/PulseWireMedia/pulsewire-go/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config package.
type Config struct {
	CleanupInterval time.Duration
	ProfileIdleTTL  time.Duration
	TenantTimeout   time.Duration
}

// NewConfig creates a new cleanup configuration by reading values
// from the already-initialized variables in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		CleanupInterval: config.CleanupInterval,
		ProfileIdleTTL:  config.UserStateTTL,
		TenantTimeout:   config.TenantTimeout,
	}
}
