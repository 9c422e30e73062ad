package database

import "strings"

// Config holds configuration for the database targets.
type Config struct {
	// Targets is a comma-separated list of connection strings, one per
	// database to synchronize. When set it takes precedence over the
	// discrete fields below.
	Targets string `mapstructure:"targets" default:""`
	// Driver is the database driver (mysql, postgres, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (or file path for sqlite).
	Name string `mapstructure:"name" default:"enums"`
	// TimeoutSeconds is the connection setup timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// TargetList returns the connection strings to synchronize. An explicit
// Targets list wins; otherwise a single connection string is composed from
// the discrete fields.
func (c Config) TargetList() []string {
	if strings.TrimSpace(c.Targets) == "" {
		return []string{c.DSN()}
	}

	var targets []string
	for _, raw := range strings.Split(c.Targets, ",") {
		if t := strings.TrimSpace(raw); t != "" {
			targets = append(targets, t)
		}
	}
	return targets
}
