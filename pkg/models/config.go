package models

// Config holds the defaults read from config.yaml. Flags override every field.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Hours  HoursConfig  `yaml:"hours" mapstructure:"hours"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// ScanConfig controls which commits are retrieved
type ScanConfig struct {
	Days        int    `yaml:"days" mapstructure:"days"`
	Author      string `yaml:"author,omitempty" mapstructure:"author"`
	Match       string `yaml:"match" mapstructure:"match"`
	Branch      string `yaml:"branch" mapstructure:"branch"`
	Repo        string `yaml:"repo" mapstructure:"repo"`
	Source      string `yaml:"source" mapstructure:"source"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// HoursConfig is the out-of-hours window
type HoursConfig struct {
	Start   string `yaml:"start" mapstructure:"start"`
	End     string `yaml:"end" mapstructure:"end"`
	Anytime bool   `yaml:"anytime" mapstructure:"anytime"`
}

// OutputConfig controls rendering and logging
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format"`
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Scan: ScanConfig{
			Days:        DefaultDayCount,
			Match:       string(MatchExact),
			Branch:      DefaultBranch,
			Repo:        ".",
			Source:      "exec",
			Concurrency: DefaultConcurrency,
		},
		Hours: HoursConfig{
			Start: DefaultStartClock,
			End:   DefaultEndClock,
		},
		Output: OutputConfig{
			Format:    "table",
			LogLevel:  "warn",
			LogFormat: "text",
		},
	}
}
