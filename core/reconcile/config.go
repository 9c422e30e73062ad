package reconcile

// Config holds configuration for the synchronization engine.
type Config struct {
	// Mode controls what happens to rows that exist in a table but not in
	// its enum definition (ignore, remove or error).
	Mode string `mapstructure:"mode" default:"ignore"`
	// Parallel processes multiple targets concurrently when enabled.
	Parallel bool `mapstructure:"parallel" default:"false"`
	// Workers caps the number of targets processed at once in parallel
	// mode. Zero means one worker per CPU.
	Workers int `mapstructure:"workers" default:"0"`
}

// DeletionMode parses the configured mode string. An empty mode means
// ModeIgnore, matching the zero value of Options.
func (c Config) DeletionMode() (DeletionMode, error) {
	if c.Mode == "" {
		return ModeIgnore, nil
	}
	return ParseDeletionMode(c.Mode)
}
