// Package main provides the entry point for the job sheet sync agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "jobsheet_agent",
	Short: "Job application sheet sync",
	Long: "jobsheet_agent fills the structured columns of a job application tracker sheet " +
		"(company, role, salary, skills, ...) from each row's pasted job description.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional JSON config file; environment variables override it")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
