package main

import (
	"os"

	"github.com/vstratful/rshell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
