package main

import (
	"os"

	"tourism-reviews/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
