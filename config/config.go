package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is a read-only snapshot of the process environment taken at startup.
// Components receive it by injection instead of reading os.Getenv themselves.
type Config map[string]string

func New() Config {
	environ := os.Environ()
	cfg := make(Config, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			cfg[key] = value
		}
	}
	return cfg
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (c Config) String(key, defaultValue string) string {
	if c == nil {
		return defaultValue
	}
	if val, ok := c[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func (c Config) Int(key string, defaultValue int) int {
	if c == nil {
		return defaultValue
	}

	s, ok := c[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}
