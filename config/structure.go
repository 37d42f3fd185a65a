package config

// Config contains basic server configuration
type Config struct {
	BackendPublicURL string
	BackendPort      int64
	DbURL            string
	DataDir          string
	LoggingLevel     string
}

// UseDB reports whether events are served from MongoDB rather than from DataDir.
func (c *Config) UseDB() bool {
	return c.DbURL != ""
}
