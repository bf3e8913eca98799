package main

import (
	"os"

	"github.com/Dicklesworthstone/muxmon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
