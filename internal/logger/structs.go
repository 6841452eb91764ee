package logger

// Console implements a console based logger.
type Console struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	// UseConsoleWriter prints human readable lines instead of JSON.
	UseConsoleWriter bool `mapstructure:"useConsoleWriter" json:"useConsoleWriter" yaml:"useConsoleWriter"`
}

// RollingFile configures one lumberjack rotated log file.
type RollingFile struct {
	Name       string `mapstructure:"name" json:"name" yaml:"name"`
	MaxSize    int    `mapstructure:"maxSize" json:"maxSize" yaml:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxBackups" json:"maxBackups" yaml:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge" json:"maxAge" yaml:"maxAge"` // days
}

// LogFile implements a file based logger with one file per level group.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" json:"path" yaml:"path"`

	Error RollingFile `mapstructure:"error" json:"error" yaml:"error"`
	Info  RollingFile `mapstructure:"info" json:"info" yaml:"info"`
	Trace RollingFile `mapstructure:"trace" json:"trace" yaml:"trace"`
	Warn  RollingFile `mapstructure:"warn" json:"warn" yaml:"warn"`
}

// Log implements the logger config.
type Log struct {
	LogLevel     string `mapstructure:"logLevel" json:"logLevel" yaml:"logLevel"` // trace, debug, info, warn, error.
	ReportCaller bool   `mapstructure:"reportCaller" json:"reportCaller" yaml:"reportCaller"`

	AppName     string `mapstructure:"appName" json:"appName" yaml:"appName"`
	ServiceName string `mapstructure:"serviceName" json:"serviceName" yaml:"serviceName"`

	// Console used mainly for docker and dev.
	Console Console `mapstructure:"console" json:"console" yaml:"console"`

	File LogFile `mapstructure:"file" json:"file" yaml:"file"`
}
