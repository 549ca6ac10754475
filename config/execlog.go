package config

import "fmt"

// ExecLogConfig selects and configures the move-log persistence backend
// (spec §4.5's move-log stream, persisted for later replay/reporting).
type ExecLogConfig struct {
	// Backend selects the log store type: "jsonl" or "sqlite".
	Backend string `koanf:"backend"`
	// Path is the file location of the log store.
	Path string `koanf:"path"`
}

// SetDefaults applies sane defaults.
func (c *ExecLogConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "run.log"
	}
}

// Validate checks mandatory fields.
func (c ExecLogConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "sqlite" {
		return fmt.Errorf("execlog: unknown backend %q", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("execlog: path is required")
	}
	return nil
}
