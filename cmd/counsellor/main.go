// Package main provides the entry point for the Uni Counsellor HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "counsellor",
	Short: "Uni Counsellor HTTP API Server",
	Long:  "Uni Counsellor guides students from profile building through university shortlisting to locked applications, backed by an AI counsellor via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
