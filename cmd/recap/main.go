package main

import (
	"os"

	"github.com/avolkov/recap/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
