package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bandpix",
	Short: "Resolve freely licensed band images with attribution",
	Long: `Bandpix resolves a representative freely licensed image plus
attribution metadata for each band in a list, looking the band up in the
Wikidata structured graph and falling back to a Wikimedia Commons search,
with a local cache so repeated runs never re-ask the network.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bandpix.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("root-path", ".", "the path where the cache database and outputs are saved")
	rootCmd.PersistentFlags().Int("concurrency", 0, "maximum concurrent resolutions (default 4)")

	// Bind flags to viper
	viper.BindPFlag("root_path", rootCmd.PersistentFlags().Lookup("root-path"))
	viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bandpix")
		viper.SetConfigName("config")
	}

	// Environment variables
	viper.SetEnvPrefix("BANDPIX")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
