package config

import (
	"errors"
	"fmt"
	"os"
)

type checkFunc func(conf *Config) error

func checkConfig(conf *Config) error {
	checkFuncs := []checkFunc{
		checkPort,
		checkEventSource,
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			return err
		}
	}

	return nil
}

func checkPort(conf *Config) error {
	port := conf.BackendPort
	if port < 1000 || port > 65535 {
		return errors.New("Invalid port number")
	}
	return nil
}

func checkEventSource(conf *Config) error {
	if conf.UseDB() {
		return nil
	}
	info, statErr := os.Stat(conf.DataDir)
	if statErr != nil {
		return fmt.Errorf("data dir %s: %w", conf.DataDir, statErr)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", conf.DataDir)
	}
	return nil
}
