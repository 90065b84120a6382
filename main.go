package main

import (
	"os"

	"github.com/chiranthakm-Dev/financial-risk-analytics-engine/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
