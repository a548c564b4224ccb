// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cookbook/internal/prompt"
	"github.com/pdiddy/cookbook/internal/recipes"
	"github.com/pdiddy/cookbook/internal/slug"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Type in a new recipe at the console",
	Long: `Add asks for a category (chosen from the existing category directories)
and then each recipe field in turn. Title, ingredients, and instructions are
required. The recipe is written to <content-root>/<category>/<title>.json,
with the file name derived from the title: punctuation removed, whitespace
replaced by underscores, lowercased.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	root := loadConfig().Content.Root

	categories, err := recipes.ListCategories(root)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no category folders found in %s", root)
	}

	out := cmd.OutOrStdout()
	p := prompt.New(cmd.InOrStdin(), out)
	p.Heading("Add New Recipe")

	r, err := p.EnterRecipe(categories)
	if err != nil {
		return fmt.Errorf("reading recipe: %w", err)
	}

	filename := slug.CLIFilename(r.Title)
	fmt.Fprintf(out, "\nAuto-generated filename: %s\n", filename)

	path := filepath.Join(root, r.Category, filename)
	if err := recipes.Save(path, r); err != nil {
		return err
	}
	log.RecipeSaved(path, r.Category)
	p.Done("Recipe saved to: " + path)
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
}
