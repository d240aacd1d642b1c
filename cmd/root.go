package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/SEOptimize-LLC/Fetch-Data-For-SEO-Monthly-Searches/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kwresearch",
	Short: "Keyword research reports from the DataForSEO API.",
	Long: `kwresearch cleans and validates keyword lists, fetches search volume
metrics from the DataForSEO API in batches, and exports CSV or Excel
reports with the original spellings restored.

Credentials go in $HOME/.kwresearch.yaml (dataforseo.login and
dataforseo.password), in a local .env file, or in the DATAFORSEO_LOGIN
and DATAFORSEO_PASSWORD environment variables.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kwresearch.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringP("out", "o", defaultCSVName, "CSV output path, or - for stdout")
	rootCmd.PersistentFlags().StringP("xlsx", "x", "", "Also write an Excel workbook to this path")
	rootCmd.PersistentFlags().StringP("delimiter", "d", ",", "CSV delimiter character")
	rootCmd.PersistentFlags().Lookup("xlsx").NoOptDefVal = defaultXLSXName
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A local .env file may carry the API credentials.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".kwresearch")
		viper.SetConfigType("yaml")
	}

	// dataforseo.login <-> DATAFORSEO_LOGIN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.kwresearch.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("dataforseo.login", "")
	viper.SetDefault("dataforseo.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
