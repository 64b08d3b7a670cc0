package main

import (
	"os"

	"github.com/ziadkadry99/docreader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
