package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/bandpix/internal/app"
	"github.com/varoOP/bandpix/internal/render"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve the image for a single band",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootPath := viper.GetString("root_path")
		year, _ := cmd.Flags().GetInt("year")
		asHTML, _ := cmd.Flags().GetBool("html")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		entry, err := application.ResolveOne(context.Background(), rootPath, args[0], year)
		if err != nil {
			return fmt.Errorf("resolve failed: %w", err)
		}

		if asHTML {
			item, err := render.ListItem(entry, args[0], year)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			fmt.Println(item)
			return nil
		}

		switch {
		case entry == nil:
			fmt.Println("nothing to resolve")
		case entry.Missing:
			fmt.Printf("%s: no freely licensed image found\n", entry.Name)
		default:
			fmt.Printf("%s\n  image:   %s\n  page:    %s\n  credit:  %s\n  license: %s\n", entry.Name, entry.ImageURL, entry.FilePageURL, entry.Credit, entry.LicenseName)
		}

		return nil
	},
}

func init() {
	resolveCmd.Flags().Int("year", 0, "year associated with the band")
	resolveCmd.Flags().Bool("html", false, "print the rendered HTML list item")
	rootCmd.AddCommand(resolveCmd)
}
