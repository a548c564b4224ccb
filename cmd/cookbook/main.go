// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cookbook CLI: document conversion,
// console recipe entry, the local web editor, and the recipe search index.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cookbook/internal/logger"
	"github.com/pdiddy/cookbook/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// envKeyReplacer maps nested keys to variables, e.g. content.root to
// COOKBOOK_CONTENT_ROOT.
var envKeyReplacer = strings.NewReplacer(".", "_")

// log is configured in PersistentPreRunE once flags and config are read.
var log = logger.Discard()

// rootCmd is the base command for the cookbook CLI.
var rootCmd = &cobra.Command{
	Use:   "cookbook",
	Short: "Manage a tree of JSON recipes",
	Long: `cookbook manages a content tree with one directory per category and one
JSON file per recipe.

Use convert to turn a folder of Word documents into recipes, add to type a
recipe in at the console, edit to run the local web form, and index to build
and query a full-text search index over the tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.NewWithLevel(os.Stderr, logger.ParseLevel(viper.GetString("log_level")))
		log.ConfigLoaded(viper.ConfigFileUsed(), viper.GetString("content.root"))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cookbook.yaml or ~/.config/cookbook/cookbook.yaml)")
	rootCmd.PersistentFlags().String("content-root", "content", "content root holding one directory per category")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("content.root", rootCmd.PersistentFlags().Lookup("content-root"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setDefaults() {
	viper.SetDefault("content.root", "content")
	viper.SetDefault("convert.source_dir", "docs")
	viper.SetDefault("convert.output_dir", "content")
	viper.SetDefault("convert.exclude", types.DefaultExcludeFolders)
	viper.SetDefault("convert.backend", string(types.BackendDocx))
	viper.SetDefault("editor.addr", "127.0.0.1:5000")
	viper.SetDefault("editor.upload_dir", filepath.Join("src", "images"))
	viper.SetDefault("index.dir", "index")
	viper.SetDefault("index.max_results", 20)
	viper.SetDefault("log_level", "info")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cookbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cookbook"))
		}
	}

	viper.SetEnvPrefix("COOKBOOK")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// loadConfig resolves every component configuration from flags, the config
// file, and the environment.
func loadConfig() types.Config {
	content := types.ContentConfig{Root: viper.GetString("content.root")}
	return types.Config{
		Content: content,
		Convert: types.ConvertConfig{
			SourceDir:      viper.GetString("convert.source_dir"),
			OutputDir:      viper.GetString("convert.output_dir"),
			ExcludeFolders: viper.GetStringSlice("convert.exclude"),
			Backend:        types.ConversionBackend(viper.GetString("convert.backend")),
		},
		Editor: types.EditorConfig{
			ContentConfig: content,
			Addr:          viper.GetString("editor.addr"),
			UploadDir:     viper.GetString("editor.upload_dir"),
		},
		Index: types.IndexConfig{
			Dir:        viper.GetString("index.dir"),
			MaxResults: viper.GetInt("index.max_results"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
