package main

import (
	"os"

	"github.com/visitplan/visitplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
