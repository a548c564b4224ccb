// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cookbook/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Run the local web form for adding and editing recipes",
	Long: `Edit serves a form for picking a category and recipe, editing its fields,
and saving it back to the content tree. Uploaded images are stored under
their original file name in the upload directory; an upload with the same
name as an existing image replaces it.

The editor has no authentication. Keep it on a loopback address.`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg := loadConfig().Editor

	if viper.GetString("log_level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := editor.New(cfg, log)
	return srv.Run(ctx)
}

func init() {
	editCmd.Flags().String("addr", editor.DefaultAddr, "listen address")
	editCmd.Flags().String("upload-dir", "src/images", "directory receiving uploaded images")

	_ = viper.BindPFlag("editor.addr", editCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("editor.upload_dir", editCmd.Flags().Lookup("upload-dir"))

	rootCmd.AddCommand(editCmd)
}
