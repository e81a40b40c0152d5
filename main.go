package main

import (
	"os"

	"github.com/chaejoon23/pind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
