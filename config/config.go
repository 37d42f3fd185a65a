// Package config provide server config from environment, viewer config from gcfg files
// and named package loggers.
package config

import (
	"fmt"
	"strings"
)

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug"}
var availableLoggingLevelsString = strings.Join(availableLoggingLevels, ", ")

func validateLoggingLevel(loggingLevel string) bool {
	for _, l := range availableLoggingLevels {
		if l == loggingLevel {
			return true
		}
	}
	return false
}

// ParseLoggingLevel normalizes level and checks it is one of the supported levels.
func ParseLoggingLevel(level string) (string, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if !validateLoggingLevel(level) {
		return "", fmt.Errorf("invalid logging level %q, expected one of: %s", level, availableLoggingLevelsString)
	}
	return level, nil
}
