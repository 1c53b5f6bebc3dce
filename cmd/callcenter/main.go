package main

import (
	"os"

	"github.com/ornina/callcenter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
