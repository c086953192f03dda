package main

import (
	"os"

	"guardian/cmd/guardian/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
