package config

import (
	"os"
	"strconv"
)

var log = NamedLogger("config")

// SetupConfig read and check config from environment.
// Close application, if any checkConfig err occurs.
func SetupConfig() *Config {
	conf, err := ReadConfig(os.Getenv)
	if err != nil {
		log.Errorf("[config] %s", err.Error())
		os.Exit(-1)
	}
	return conf
}

// ReadConfig builds Config from the given environment lookup and checks it.
func ReadConfig(getenv func(string) string) (*Config, error) {
	readEnv(getenv)
	conf := getDefaultConfig()

	if level := getenv("HEPVIS_LOG_LEVEL"); level != "" {
		parsed, levelErr := ParseLoggingLevel(level)
		if levelErr != nil {
			return nil, levelErr
		}
		conf.LoggingLevel = parsed
	} else if DEVEnv {
		conf.LoggingLevel = "debug"
	}
	if err := SetLoggingLevel(conf.LoggingLevel); err != nil {
		return nil, err
	}

	publicURL := getenv("HEPVIS_BACKEND_PUBLIC_URL")
	if publicURL != "" {
		conf.BackendPublicURL = publicURL
	} else {
		log.Warn("[config] Public url is not defined. Using default localhost:5000")
	}

	port := getenv("HEPVIS_BACKEND_PORT")
	if port != "" {
		portNumber, numberErr := strconv.ParseInt(port, 10, 64)
		if numberErr != nil {
			log.Errorf("[config] Port is not a number. %s", numberErr.Error())
		} else {
			conf.BackendPort = portNumber
		}
	} else {
		log.Warn("[config] Backend port is not defined. Using default 5000")
	}

	conf.DbURL = getenv("HEPVIS_DB_URL")
	if dataDir := getenv("HEPVIS_DATA_DIR"); dataDir != "" {
		conf.DataDir = dataDir
	}
	if !conf.UseDB() {
		log.Infof("[config] Db url is not defined. Serving events from %s", conf.DataDir)
	}

	if err := checkConfig(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func getDefaultConfig() *Config {
	return &Config{
		BackendPublicURL: "localhost:5000",
		BackendPort:      5000,
		DataDir:          "data",
		LoggingLevel:     "info",
	}
}
