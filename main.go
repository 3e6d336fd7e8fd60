package main

import (
	"os"

	"github.com/medevidences/matchengine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
