package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/bandpix/internal/app"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the resolution cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached resolutions",
	Long: `Clear removes every cached entry, including confirmed-absent
records. The next run will perform fresh network lookups for all bands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootPath := viper.GetString("root_path")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return application.ClearCache(context.Background(), rootPath)
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
