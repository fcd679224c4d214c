package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode" json:"debug_mode,omitempty"` // Master toggle - false = no library logging
	Level     string `yaml:"level" json:"level,omitempty" validate:"oneof=debug info warn error"`
	Format    string `yaml:"format" json:"format,omitempty" validate:"oneof=console json"`
}
