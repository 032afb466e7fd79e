package main

import (
	"os"

	"github.com/moffa90/go-flashcrc/cmd/flashcrc/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
