package config

import "github.com/ericz0u/IEMClassification/internal/signature"

const (
	defaultInputDir     = "~/measurements"
	defaultOutputDir    = "~/.local/share/iemsort/dataset"
	defaultLogDir       = "~/.local/share/iemsort/logs"
	defaultWorkers      = 1
	defaultWidthInches  = 8.0
	defaultHeightInches = 5.0
	defaultDPI          = 96
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Analysis: Analysis{
			ThresholdDB: signature.DefaultThreshold,
			Workers:     defaultWorkers,
		},
		Render: Render{
			WidthInches:  defaultWidthInches,
			HeightInches: defaultHeightInches,
			DPI:          defaultDPI,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
