package main

import (
	"os"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
)

var log = conf.NamedLogger("hepvis")

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
