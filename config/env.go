package config

// PRODEnv - current environment
var PRODEnv = false

// DEVEnv - current environment
var DEVEnv = false

func readEnv(getenv func(string) string) {
	PRODEnv, DEVEnv = false, false
	env := getenv("HEPVIS_ENV")
	if env == "PROD" {
		PRODEnv = true
	} else if env == "DEV" {
		DEVEnv = true
	} else {
		PRODEnv = true
	}
}
