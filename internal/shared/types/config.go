package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input         string   `json:"input" yaml:"input" toml:"input"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Top           int      `json:"top" yaml:"top" toml:"top"`
	Bins          int      `json:"bins" yaml:"bins" toml:"bins"`
	LoadTimeout   string   `json:"load_timeout" yaml:"load_timeout" toml:"load_timeout"`
	AWSProfile    string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	NoStatic      bool     `json:"no_static" yaml:"no_static" toml:"no_static"`
	NoInteractive bool     `json:"no_interactive" yaml:"no_interactive" toml:"no_interactive"`
	Trend         bool     `json:"trend" yaml:"trend" toml:"trend"`
}

// EnvOverrides são as únicas configurações lidas do ambiente (prefixo RETAIL_).
type EnvOverrides struct {
	Input string `envconfig:"INPUT"`
	Dir   string `envconfig:"DIR"`
}
