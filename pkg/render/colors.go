package render

import (
	"github.com/cdmlens/cdmlens/pkg/graph"
	"github.com/cdmlens/cdmlens/pkg/layout"
)

// categoryFill maps node categories to fill colors for the default view.
var categoryFill = map[string]string{
	graph.CategoryBeing:    "#b39ddb",
	graph.CategoryAvatar:   "#9fa8da",
	graph.CategoryObject:   "#80cbc4",
	graph.CategoryList:     "#ffe082",
	graph.CategoryPart:     "#ffab91",
	graph.CategoryGroup:    "#ce93d8",
	graph.CategoryVariable: "#90caf9",
}

// relationshipFill tones the entity colors down in relationship-emphasis
// mode so edge labels carry the view.
var relationshipFill = map[string]string{
	graph.CategoryBeing:    "#d1c4e9",
	graph.CategoryAvatar:   "#c5cae9",
	graph.CategoryObject:   "#b2dfdb",
	graph.CategoryList:     "#ffecb3",
	graph.CategoryPart:     "#ffccbc",
	graph.CategoryGroup:    "#e1bee7",
	graph.CategoryVariable: "#bbdefb",
}

// defaultFill is used for nodes without a recognized category.
const defaultFill = "#eceff1"

// fillColor returns the fill color for a category under a mode.
func fillColor(category string, mode layout.Mode) string {
	table := categoryFill
	if mode == layout.ModeRelationship {
		table = relationshipFill
	}
	if c, ok := table[category]; ok {
		return c
	}
	return defaultFill
}
