package mcpserver

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/erraggy/langconf/lcerrors"
)

// settings holds the MCP-only server settings. Expansion defaults come
// from internal/config, shared with the CLI.
type settings struct {
	// AllowPrivateIPs lets URL inputs and extends references reach private,
	// loopback and link-local addresses.
	AllowPrivateIPs bool `env:"LANGCONF_MCP_ALLOW_PRIVATE_IPS"`
	// MaxInlineSize bounds the content input, in bytes.
	MaxInlineSize int64 `env:"LANGCONF_MCP_MAX_INLINE_SIZE" envDefault:"1048576"`
}

// loadSettings reads LANGCONF_MCP_* environment variables.
func loadSettings() (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return settings{}, &lcerrors.ConfigError{Message: "cannot read MCP server environment", Cause: err}
	}
	if s.MaxInlineSize <= 0 {
		return settings{}, &lcerrors.ConfigError{
			Option:  "LANGCONF_MCP_MAX_INLINE_SIZE",
			Value:   fmt.Sprint(s.MaxInlineSize),
			Message: "must be positive",
		}
	}
	return s, nil
}
