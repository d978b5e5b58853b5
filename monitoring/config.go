package monitoring

import (
	"fmt"
)

// Config is the config of the metrics endpoint.
type Config struct {
	HTTP string `toml:",omitempty"`
	Port int    `toml:",omitempty"`
}

// DefaultConfig is the default config for monitorings used in fst.
var DefaultConfig = Config{
	HTTP: "127.0.0.1",
	Port: 19090,
}

// Endpoint returns the listening address.
func (c Config) Endpoint() string {
	return fmt.Sprintf("%s:%d", c.HTTP, c.Port)
}
