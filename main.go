package main

import (
	"os"

	"github.com/EngindalgaMaku/dersplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
