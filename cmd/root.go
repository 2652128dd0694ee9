package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golang-autoprofit",
	Short: "Automated position-lifecycle and risk-management engine",
}

func Execute() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd.Execute()
}
