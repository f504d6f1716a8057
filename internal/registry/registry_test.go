package registry

import (
	"testing"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_KnownTypes(t *testing.T) {
	props, styles, content := Defaults(models.ComponentHero)
	assert.Equal(t, models.JSONMap{"title": "Bienvenue", "subtitle": "Découvrez notre site", "cta": "Commencer"}, props)
	assert.Equal(t, models.JSONMap{"minHeight": "80vh", "textAlign": "center"}, styles)
	assert.Empty(t, content)
	assert.NotNil(t, content)

	props, styles, _ = Defaults(models.ComponentButton)
	assert.Equal(t, "Cliquez-moi", props["label"])
	assert.Equal(t, "primary", props["variant"])
	assert.Equal(t, "0.5rem", styles["borderRadius"])

	props, styles, _ = Defaults(models.ComponentNavbar)
	assert.Equal(t, "Logo", props["logo"])
	assert.Equal(t, []interface{}{}, props["links"])
	assert.Empty(t, styles)

	props, _, _ = Defaults(models.ComponentGrid)
	assert.Equal(t, 3, props["columns"])
	assert.Equal(t, "1rem", props["gap"])

	props, _, _ = Defaults(models.ComponentFooter)
	assert.Equal(t, "© 2024", props["copyright"])
}

func TestDefaults_EveryCatalogTypeHasProps(t *testing.T) {
	for _, e := range Catalog() {
		props, _, _ := Defaults(e.Type)
		assert.NotEmpty(t, props, "type %s", e.Type)
	}
}

func TestDefaults_FreshMapsPerCall(t *testing.T) {
	first, _, _ := Defaults(models.ComponentText)
	first["content"] = "mutated"

	second, _, _ := Defaults(models.ComponentText)
	assert.Equal(t, "Votre texte ici", second["content"])
}

func TestDefaults_CustomTypeIsEmpty(t *testing.T) {
	props, styles, content := Defaults(models.ComponentCustom)
	assert.Empty(t, props)
	assert.Empty(t, styles)
	assert.Empty(t, content)
}

func TestDefaults_UnknownTypesReturnEmptyMaps(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown types have no defaults", prop.ForAll(
		func(tag string) bool {
			if IsKnownType(tag) {
				return true
			}
			props, styles, content := Defaults(tag)
			return props != nil && styles != nil && content != nil &&
				len(props) == 0 && len(styles) == 0 && len(content) == 0
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestCatalog_OrderAndCategories(t *testing.T) {
	entries := Catalog()
	require.Len(t, entries, 12)
	assert.Equal(t, Entry{Type: "section", Label: "Section", Category: CategoryLayout}, entries[0])
	assert.Equal(t, Entry{Type: "form", Label: "Formulaire", Category: CategoryContent}, entries[11])

	assert.Equal(t, []string{"Layout", "Navigation", "Contenu"}, Categories())

	entries[0].Label = "changed"
	assert.Equal(t, "Section", Catalog()[0].Label)
}

func TestGrouped(t *testing.T) {
	groups := Grouped()
	require.Len(t, groups, 3)

	assert.Equal(t, CategoryLayout, groups[0].Category)
	assert.Equal(t, []string{"section", "container", "grid"}, types(groups[0].Entries))
	assert.Equal(t, []string{"header", "navbar", "footer"}, types(groups[1].Entries))
	assert.Equal(t, []string{"hero", "text", "image", "button", "card", "form"}, types(groups[2].Entries))
}

func TestIsKnownType(t *testing.T) {
	tests := []struct {
		tag      string
		expected bool
	}{
		{"hero", true},
		{"custom", true},
		{"navbar", true},
		{"Hero", false},
		{"", false},
		{"carousel", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsKnownType(tt.tag))
		})
	}
}

func types(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Type)
	}
	return out
}
