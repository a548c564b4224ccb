// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cookbook/internal/container"
	"github.com/pdiddy/cookbook/internal/convert"
	"github.com/pdiddy/cookbook/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [documents...]",
	Short: "Convert Word documents into JSON recipes",
	Long: `Convert reads recipe documents and writes one JSON recipe per document.

With no arguments it walks the source directory. Each document's category
is the name of the top-level folder it sits under; documents directly in
the source directory are filed under "Uncategorized". Folders named in the
exclusion list are skipped wherever they appear.

With arguments, only the named documents are converted, all into the
category given by --category.

The docx backend reads .docx files directly. The markitdown backend runs
the markitdown container and also accepts .doc, .odt, and .rtf.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig().Convert

	ex, err := newExtractor(cfg.Backend)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var result convert.BatchResult
	if len(args) > 0 {
		category, _ := cmd.Flags().GetString("category")
		result = convert.ConvertFiles(ex, args, category, cfg.OutputDir, out)
	} else {
		log.Info("converting document tree", "source", cfg.SourceDir, "output", cfg.OutputDir, "backend", cfg.Backend)
		result, err = convert.ConvertTree(ex, cfg, out)
		if err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func newExtractor(backend types.ConversionBackend) (convert.Extractor, error) {
	switch backend {
	case types.BackendDocx, "":
		return convert.DocxExtractor{}, nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		log.Debug("container runtime detected", "runtime", rt.Name())
		ex, err := convert.NewMarkitdownExtractor(rt)
		if err != nil {
			return nil, err
		}
		return ex, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: use docx or markitdown", backend)
	}
}

func init() {
	convertCmd.Flags().String("source-dir", "docs", "root of the source document tree")
	convertCmd.Flags().String("output-dir", "content", "directory receiving category folders of JSON recipes")
	convertCmd.Flags().StringSlice("exclude", types.DefaultExcludeFolders, "folder names to skip anywhere in the tree")
	convertCmd.Flags().String("backend", string(types.BackendDocx), "conversion backend: docx or markitdown")
	convertCmd.Flags().String("category", types.UncategorizedCategory, "category for documents named on the command line")

	_ = viper.BindPFlag("convert.source_dir", convertCmd.Flags().Lookup("source-dir"))
	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("convert.exclude", convertCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("convert.backend", convertCmd.Flags().Lookup("backend"))

	rootCmd.AddCommand(convertCmd)
}
