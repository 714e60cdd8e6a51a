package config

// ReporterConfig defines how diff results are rendered by the CLI
type ReporterConfig struct {
	OutputFormat string `json:"output_format,omitempty" yaml:"output_format,omitempty" validate:"omitempty,outputformat"`
	Mode         string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,reportmode"`
	HTMLTitle    string `json:"html_title,omitempty" yaml:"html_title,omitempty"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputFormat: DefaultReporterOutputFormat,
		Mode:         DefaultReporterMode,
		HTMLTitle:    "Page changes",
	}
}
