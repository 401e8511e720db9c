package main

import (
	"flag"
	"fmt"
	"os"

	"cgmd/internal/di"
	"cgmd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug output to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "cgmd: %s\n", err)
		os.Exit(1)
	}
}
