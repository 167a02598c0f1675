package main

import (
	"os"

	"github.com/jasperquin/heartlog/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
