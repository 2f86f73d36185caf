package config

// this holds the resolved configuration values from CLI
var (
	DB              string // connection string for the database
	WaitForServices string // duration to wait for other services to be ready
	LogLevel        string // sets the log level (zap log level values)
	LogFormat       string // text vs json
	LogConfig       string // path to log config file
	LogFileBaseURL  string // base URL used when fetching remote timing logs
)
