// Package main provides the entry point for the dashboard CLI.
package main

import (
	"os"

	"github.com/JonMunkholm/dashboard/cmd/dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
