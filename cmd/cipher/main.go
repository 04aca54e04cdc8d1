package main

import (
	"os"

	"cipher/cmd/cipher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
