package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"soroswap-cli/cmd"
)

func main() {
	// Optional .env; regular environment variables work without it.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
