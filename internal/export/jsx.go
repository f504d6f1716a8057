package export

import (
	"strings"

	"github.com/huangang/sitecraft/internal/models"
)

var jsxBraces = strings.NewReplacer("{", "&#123;", "}", "&#125;")

// ComponentName derives the exported function name from a page name by
// keeping ASCII letters and digits only.
func ComponentName(pageName string) string {
	var b strings.Builder
	for _, r := range pageName {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String() + "Page"
}

func (e *Engine) renderJSXModule(page models.Page, components []models.Component) string {
	fragments := make([]string, 0, len(components))
	for _, c := range components {
		fragments = append(fragments, e.renderJSXComponent(c))
	}

	return "import React from 'react';\n\n" +
		"export default function " + ComponentName(page.Name) + "() {\n" +
		"  return (\n" +
		"    <div className=\"min-h-screen\">\n" +
		strings.Join(fragments, "\n\n") + "\n" +
		"    </div>\n" +
		"  );\n" +
		"}"
}

// jsxText strips markup and escapes braces so a value stays literal JSX text.
func (e *Engine) jsxText(s string) string {
	return jsxBraces.Replace(e.textPolicy.Sanitize(s))
}

func (e *Engine) jsxProp(props models.JSONMap, key, fallback string) string {
	return e.jsxText(prop(props, key, fallback))
}

func (e *Engine) renderJSXComponent(c models.Component) string {
	p := c.Props

	switch c.ComponentType {
	case models.ComponentHero:
		return `      <section className="min-h-[80vh] flex flex-col items-center justify-center text-center p-8 bg-gradient-to-br from-purple-500 to-indigo-600 text-white">
        <h1 className="text-5xl font-bold mb-4">` + e.jsxProp(p, "title", "Titre") + `</h1>
        <p className="text-xl mb-8 opacity-90">` + e.jsxProp(p, "subtitle", "Sous-titre") + `</p>
        <button className="px-6 py-3 bg-white text-purple-600 rounded-lg font-semibold">` + e.jsxProp(p, "cta", "Action") + `</button>
      </section>`

	case models.ComponentNavbar:
		return `      <nav className="flex items-center justify-between p-4 bg-white border-b">
        <span className="font-bold text-xl">` + e.jsxProp(p, "logo", "Logo") + `</span>
        <div className="flex gap-6">
          <a href="#" className="text-gray-600 hover:text-gray-900">Lien 1</a>
          <a href="#" className="text-gray-600 hover:text-gray-900">Lien 2</a>
          <a href="#" className="text-gray-600 hover:text-gray-900">Lien 3</a>
        </div>
      </nav>`

	case models.ComponentText:
		return `      <p className="p-4">` + e.jsxProp(p, "content", "Texte") + `</p>`

	case models.ComponentButton:
		return `      <button className="px-6 py-3 bg-purple-600 text-white rounded-lg font-semibold hover:bg-purple-700">
        ` + e.jsxProp(p, "label", "Bouton") + `
      </button>`

	case models.ComponentCard:
		return `      <div className="p-6 border rounded-xl m-4">
        <h3 className="text-lg font-semibold mb-2">` + e.jsxProp(p, "title", "Titre") + `</h3>
        <p className="text-gray-600">` + e.jsxProp(p, "description", "Description") + `</p>
      </div>`

	case models.ComponentFooter:
		return `      <footer className="p-8 bg-gray-100 text-center">
        <p className="text-gray-600">` + e.jsxProp(p, "copyright", "© 2024") + `</p>
      </footer>`
	}

	return "      {/* " + strings.ReplaceAll(c.ComponentType, "*/", "") + " */}"
}
