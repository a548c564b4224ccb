// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"fmt"

	"github.com/pdiddy/cookbook/pkg/types"
)

// EnterRecipe walks through every recipe field: category (chosen from
// categories), title, requires, ingredients, instructions, remarks, yield,
// and source. Title, ingredients, and instructions are required.
func (p *Prompter) EnterRecipe(categories []string) (*types.Recipe, error) {
	idx, err := p.Choose("Available Categories", categories)
	if err != nil {
		return nil, err
	}

	r := types.NewRecipe()
	r.Category = categories[idx]

	fmt.Fprintln(p.out)
	if r.Title, err = p.Required("Recipe Title"); err != nil {
		return nil, err
	}
	if r.Requires, err = p.Optional("Requires"); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out)
	if r.Ingredients, err = p.RequiredLines("Ingredients"); err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out)
	if r.Instructions, err = p.RequiredLines("Instructions"); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out)
	if r.Remarks, err = p.Optional("Remarks"); err != nil {
		return nil, err
	}
	if r.Yield, err = p.Optional("Yield"); err != nil {
		return nil, err
	}
	if r.Source, err = p.Optional("Source"); err != nil {
		return nil, err
	}
	return r, nil
}
