package config

const (
	defaultConfigPath       = "~/.config/salience/config.toml"
	defaultStateDir         = "~/.local/share/salience"
	defaultLogDir           = "~/.local/share/salience/logs"
	defaultSignificantWords = 100
	defaultClusterGap       = 5
	defaultAPIBind          = "127.0.0.1:7490"
	defaultFetchTimeout     = 20
	defaultFetchUserAgent   = "salience/dev"
	defaultFetchMaxBytes    = 5 << 20
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Summarizer: Summarizer{
			SignificantWords: defaultSignificantWords,
			ClusterGap:       defaultClusterGap,
		},
		Cache: Cache{
			Enabled: true,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Fetch: Fetch{
			TimeoutSeconds: defaultFetchTimeout,
			UserAgent:      defaultFetchUserAgent,
			MaxBytes:       defaultFetchMaxBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
