package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/bandpix/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run <bands.json>",
	Short: "Resolve images for every band in a list",
	Long: `Run resolves an image plus attribution metadata for every band in
the given JSON list ([{"name": "...", "year": ...}, ...]):
1. Returns cached results without network traffic
2. Looks the band up in the Wikidata structured graph
3. Falls back to a Wikimedia Commons full-text search
4. Fetches display URL, license and credit for the chosen file
5. Records bands with no usable image as confirmed absent
6. Writes a YAML report and patches the favorites list

Set continue_on_error=false in the config to make a hard metadata-fetch
failure abort the whole batch instead of skipping that one band.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootPath := viper.GetString("root_path")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := application.Run(context.Background(), rootPath, args[0]); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
