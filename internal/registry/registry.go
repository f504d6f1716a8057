// Package registry holds the component palette and the starting props and
// styles each component type is created with.
package registry

import "github.com/huangang/sitecraft/internal/models"

// Palette categories, in display order.
const (
	CategoryLayout     = "Layout"
	CategoryNavigation = "Navigation"
	CategoryContent    = "Contenu"
)

// Entry is one draggable item of the component palette.
type Entry struct {
	Type     string `json:"type"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// Group is a palette category with its entries.
type Group struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"entries"`
}

var catalog = []Entry{
	{Type: models.ComponentSection, Label: "Section", Category: CategoryLayout},
	{Type: models.ComponentContainer, Label: "Conteneur", Category: CategoryLayout},
	{Type: models.ComponentGrid, Label: "Grille", Category: CategoryLayout},
	{Type: models.ComponentHeader, Label: "En-tête", Category: CategoryNavigation},
	{Type: models.ComponentNavbar, Label: "Barre Nav", Category: CategoryNavigation},
	{Type: models.ComponentFooter, Label: "Pied de page", Category: CategoryNavigation},
	{Type: models.ComponentHero, Label: "Hero", Category: CategoryContent},
	{Type: models.ComponentText, Label: "Texte", Category: CategoryContent},
	{Type: models.ComponentImage, Label: "Image", Category: CategoryContent},
	{Type: models.ComponentButton, Label: "Bouton", Category: CategoryContent},
	{Type: models.ComponentCard, Label: "Carte", Category: CategoryContent},
	{Type: models.ComponentForm, Label: "Formulaire", Category: CategoryContent},
}

var categories = []string{CategoryLayout, CategoryNavigation, CategoryContent}

// defaultProps builds fresh maps on every call so callers may mutate the result.
func defaultProps(componentType string) models.JSONMap {
	switch componentType {
	case models.ComponentHero:
		return models.JSONMap{"title": "Bienvenue", "subtitle": "Découvrez notre site", "cta": "Commencer"}
	case models.ComponentText:
		return models.JSONMap{"content": "Votre texte ici"}
	case models.ComponentButton:
		return models.JSONMap{"label": "Cliquez-moi", "variant": "primary"}
	case models.ComponentImage:
		return models.JSONMap{"src": "", "alt": "Image description"}
	case models.ComponentCard:
		return models.JSONMap{"title": "Titre", "description": "Description"}
	case models.ComponentSection:
		return models.JSONMap{"fullWidth": false}
	case models.ComponentContainer:
		return models.JSONMap{"maxWidth": "1200px"}
	case models.ComponentGrid:
		return models.JSONMap{"columns": 3, "gap": "1rem"}
	case models.ComponentNavbar:
		return models.JSONMap{"logo": "Logo", "links": []interface{}{}}
	case models.ComponentHeader:
		return models.JSONMap{"sticky": true}
	case models.ComponentFooter:
		return models.JSONMap{"copyright": "© 2024"}
	case models.ComponentForm:
		return models.JSONMap{"fields": []interface{}{}}
	}
	return models.JSONMap{}
}

func defaultStyles(componentType string) models.JSONMap {
	switch componentType {
	case models.ComponentSection:
		return models.JSONMap{"padding": "4rem 0", "backgroundColor": "transparent"}
	case models.ComponentHero:
		return models.JSONMap{"minHeight": "80vh", "textAlign": "center"}
	case models.ComponentContainer:
		return models.JSONMap{"padding": "1rem"}
	case models.ComponentText:
		return models.JSONMap{"fontSize": "1rem", "color": "inherit"}
	case models.ComponentButton:
		return models.JSONMap{"padding": "0.75rem 1.5rem", "borderRadius": "0.5rem"}
	}
	return models.JSONMap{}
}

// Defaults returns the initial props, styles and content for a component
// type. Unknown types yield three empty maps. Content always starts empty.
func Defaults(componentType string) (props, styles, content models.JSONMap) {
	return defaultProps(componentType), defaultStyles(componentType), models.JSONMap{}
}

// Catalog returns the palette entries in display order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Categories returns the palette category names in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Grouped returns the palette split by category.
func Grouped() []Group {
	groups := make([]Group, 0, len(categories))
	for _, cat := range categories {
		g := Group{Category: cat, Entries: []Entry{}}
		for _, e := range catalog {
			if e.Category == cat {
				g.Entries = append(g.Entries, e)
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// IsKnownType reports whether componentType belongs to the closed set of
// component types, including "custom" which has no palette entry.
func IsKnownType(componentType string) bool {
	for _, t := range models.ComponentTypes {
		if t == componentType {
			return true
		}
	}
	return false
}
