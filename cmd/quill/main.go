// Package main provides the entry point for the Quill governance CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/quillnotes/quill/cmd/quill/commands"
)

func main() {
	// Best-effort; a missing .env is not an error.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
