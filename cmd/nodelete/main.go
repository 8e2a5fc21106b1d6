package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"nodelete/internal/di"
	"nodelete/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "path to the YAML config file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to console at debug level")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "nodelete: %s\n", err)
		os.Exit(1)
	}
}
