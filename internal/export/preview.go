package export

import (
	"html"
	"sort"
	"strings"
	"unicode"

	"github.com/huangang/sitecraft/internal/models"
)

// Preview viewports.
const (
	ViewportDesktop = "desktop"
	ViewportTablet  = "tablet"
	ViewportMobile  = "mobile"
)

var viewportWidths = map[string]string{
	ViewportDesktop: "100%",
	ViewportTablet:  "42rem",
	ViewportMobile:  "24rem",
}

const previewStyles = `    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: system-ui, sans-serif; line-height: 1.6; background: #e5e5e5; }
    .frame { margin: 2rem auto; background: #fff; border-radius: 0.5rem; overflow: hidden; box-shadow: 0 25px 50px -12px rgba(0,0,0,.25); }
    .empty { display: flex; align-items: center; justify-content: center; height: 24rem; color: #888; }
    .hero { min-height: 400px; display: flex; flex-direction: column; align-items: center; justify-content: center; padding: 2rem; }
    .hero h1 { font-size: 3rem; margin-bottom: 1rem; }
    .hero p { font-size: 1.25rem; margin-bottom: 2rem; color: #666; }
    .btn { padding: 0.75rem 1.5rem; border: none; border-radius: 0.5rem; background: #7c3aed; color: #fff; font-weight: 500; }
    .placeholder { text-align: center; color: #888; padding: 3rem 0; border: 2px dashed #ddd; border-radius: 0.5rem; }
    .navbar { display: flex; align-items: center; justify-content: space-between; padding: 1rem; border-bottom: 1px solid #eee; }
    .navbar div { display: flex; gap: 1rem; color: #666; }
    .card { padding: 1.5rem; border: 1px solid #eee; border-radius: 0.75rem; margin: 1rem; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; padding: 1rem; }
    .grid div { aspect-ratio: 1; background: #f0f0f0; border-radius: 0.5rem; }
    .image-placeholder { aspect-ratio: 16 / 9; background: #f0f0f0; border-radius: 0.5rem; display: flex; align-items: center; justify-content: center; color: #888; }
    footer { padding: 2rem; text-align: center; background: #f5f5f5; color: #666; }
    .unknown { padding: 2rem; text-align: center; color: #888; }`

// RenderPreview renders the editor preview of a page: every component type
// has a visual, component styles are applied inline and the page is framed
// at the requested viewport width.
func (e *Engine) RenderPreview(page models.Page, components []models.Component, projectName, viewport string) string {
	width, ok := viewportWidths[viewport]
	if !ok {
		width = viewportWidths[ViewportDesktop]
	}

	var body strings.Builder
	ordered := flatten(components)
	if len(ordered) == 0 {
		body.WriteString(`      <div class="empty">Aucun composant à afficher</div>`)
	}
	for i, c := range ordered {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(e.renderPreviewComponent(c))
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"fr\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <title>Prévisualisation: " + e.htmlText(projectName) + " - " + e.htmlText(page.Name) + "</title>\n")
	b.WriteString("  <style>\n" + previewStyles + "\n  </style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("  <div class=\"frame\" style=\"max-width: " + width + "\">\n")
	b.WriteString(body.String())
	b.WriteString("\n  </div>\n</body>\n</html>")
	return b.String()
}

func (e *Engine) renderPreviewComponent(c models.Component) string {
	p := c.Props
	style := styleAttr("", c.Styles)

	switch c.ComponentType {
	case models.ComponentHero:
		return `      <div class="hero"` + style + `>
        <h1>` + e.htmlProp(p, "title", "Titre Hero") + `</h1>
        <p>` + e.htmlProp(p, "subtitle", "Sous-titre") + `</p>
        <button class="btn">` + e.htmlProp(p, "cta", "Action") + `</button>
      </div>`

	case models.ComponentSection:
		return `      <section` + styleAttr("padding: 2rem", c.Styles) + `>
        <div class="placeholder">Section vide</div>
      </section>`

	case models.ComponentText:
		if !isFalsy(p["markdown"]) {
			if rendered, ok := e.renderMarkdown(prop(p, "content", "Texte")); ok {
				return `      <div style="padding: 1rem">` + rendered + `</div>`
			}
		}
		return `      <p` + styleAttr("padding: 1rem", c.Styles) + `>` + e.htmlProp(p, "content", "Texte") + `</p>`

	case models.ComponentButton:
		return `      <div style="padding: 0.5rem"><button class="btn"` + style + `>` + e.htmlProp(p, "label", "Bouton") + `</button></div>`

	case models.ComponentCard:
		return `      <div class="card"` + style + `>
        <h3>` + e.htmlProp(p, "title", "Titre de carte") + `</h3>
        <p>` + e.htmlProp(p, "description", "Description de la carte") + `</p>
      </div>`

	case models.ComponentImage:
		src := prop(p, "src", "")
		if src == "" || !safeURL(src) {
			return `      <div style="padding: 1rem"><div class="image-placeholder">Image placeholder</div></div>`
		}
		return `      <div style="padding: 1rem"><img src="` + html.EscapeString(src) + `" alt="` +
			html.EscapeString(prop(p, "alt", "")) + `"` +
			styleAttr("max-width: 100%; border-radius: 0.5rem", c.Styles) + `></div>`

	case models.ComponentNavbar:
		return `      <nav class="navbar"` + style + `>
        <strong>` + e.htmlProp(p, "logo", "Logo") + `</strong>
        <div><span>Lien 1</span><span>Lien 2</span><span>Lien 3</span></div>
      </nav>`

	case models.ComponentFooter:
		return `      <footer` + style + `>
        <p>` + e.htmlProp(p, "copyright", "© 2024 Votre site") + `</p>
      </footer>`

	case models.ComponentGrid:
		return `      <div class="grid"` + style + `><div></div><div></div><div></div></div>`
	}

	return `      <div class="unknown"><p>` + e.htmlText(c.ComponentType) + `</p></div>`
}

// styleAttr builds a style attribute from base declarations followed by the
// camelCase style map, sorted by property for stable output. Values that
// could escape their declaration are dropped.
func styleAttr(base string, styles models.JSONMap) string {
	decls := make([]string, 0, len(styles)+1)
	if base != "" {
		decls = append(decls, base)
	}
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := styles[k]
		if isFalsy(v) {
			continue
		}
		value := stringify(v)
		if strings.ContainsAny(value, ";{}<>\"") || strings.ContainsAny(k, ";:{}<>\" ") {
			continue
		}
		decls = append(decls, kebab(k)+": "+value)
	}
	if len(decls) == 0 {
		return ""
	}
	return ` style="` + html.EscapeString(strings.Join(decls, "; ")) + `"`
}

func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func safeURL(src string) bool {
	lower := strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "/") ||
		strings.HasPrefix(lower, "data:image/")
}
