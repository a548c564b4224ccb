// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cookbook/internal/recipes"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category directories and their recipe counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := loadConfig().Content.Root
		categories, err := recipes.ListCategories(root)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(categories) == 0 {
			fmt.Fprintf(out, "No categories in %s\n", root)
			return nil
		}
		for _, c := range categories {
			names, err := recipes.ListRecipes(root, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-30s  %d\n", c, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
