package export

import (
	"bytes"
	"strings"

	"github.com/huangang/sitecraft/internal/models"
)

const documentStyles = `    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: system-ui, sans-serif; line-height: 1.6; }
    .hero { min-height: 80vh; display: flex; flex-direction: column; align-items: center; justify-content: center; text-align: center; padding: 2rem; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; }
    .hero h1 { font-size: 3rem; margin-bottom: 1rem; }
    .hero p { font-size: 1.25rem; margin-bottom: 2rem; opacity: 0.9; }
    .btn-primary { padding: 0.75rem 1.5rem; background: white; color: #667eea; border: none; border-radius: 0.5rem; font-weight: 600; cursor: pointer; }
    .navbar { display: flex; align-items: center; justify-content: space-between; padding: 1rem 2rem; background: #fff; border-bottom: 1px solid #eee; }
    .logo { font-weight: bold; font-size: 1.25rem; }
    .nav-links { display: flex; gap: 1.5rem; }
    .nav-links a { text-decoration: none; color: #666; }
    .card { padding: 1.5rem; border: 1px solid #eee; border-radius: 0.75rem; margin: 1rem; }
    .card h3 { margin-bottom: 0.5rem; }
    .section { padding: 4rem 2rem; }
    footer { padding: 2rem; text-align: center; background: #f5f5f5; }`

func (e *Engine) renderHTMLDocument(page models.Page, components []models.Component, projectName string) string {
	fragments := make([]string, 0, len(components))
	for _, c := range components {
		fragments = append(fragments, e.renderHTMLComponent(c))
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"fr\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + e.htmlText(page.Name) + " - " + e.htmlText(projectName) + "</title>\n")
	b.WriteString("  <style>\n" + documentStyles + "\n  </style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(strings.Join(fragments, "\n"))
	b.WriteString("\n</body>\n</html>")
	return b.String()
}

// htmlText sanitises a substituted value for element content.
func (e *Engine) htmlText(s string) string {
	return e.htmlPolicy.Sanitize(s)
}

func (e *Engine) htmlProp(props models.JSONMap, key, fallback string) string {
	return e.htmlText(prop(props, key, fallback))
}

func (e *Engine) renderHTMLComponent(c models.Component) string {
	p := c.Props

	switch c.ComponentType {
	case models.ComponentHero:
		return `
    <section class="hero">
      <h1>` + e.htmlProp(p, "title", "Titre") + `</h1>
      <p>` + e.htmlProp(p, "subtitle", "Sous-titre") + `</p>
      <button class="btn-primary">` + e.htmlProp(p, "cta", "Action") + `</button>
    </section>`

	case models.ComponentNavbar:
		return `
    <nav class="navbar">
      <span class="logo">` + e.htmlProp(p, "logo", "Logo") + `</span>
      <div class="nav-links">
        <a href="#">Lien 1</a>
        <a href="#">Lien 2</a>
        <a href="#">Lien 3</a>
      </div>
    </nav>`

	case models.ComponentText:
		if !isFalsy(p["markdown"]) {
			if rendered, ok := e.renderMarkdown(prop(p, "content", "Texte")); ok {
				return "\n    " + rendered
			}
		}
		return `
    <p>` + e.htmlProp(p, "content", "Texte") + `</p>`

	case models.ComponentButton:
		return `
    <button class="btn-primary">` + e.htmlProp(p, "label", "Bouton") + `</button>`

	case models.ComponentCard:
		return `
    <div class="card">
      <h3>` + e.htmlProp(p, "title", "Titre") + `</h3>
      <p>` + e.htmlProp(p, "description", "Description") + `</p>
    </div>`

	case models.ComponentFooter:
		return `
    <footer>
      <p>` + e.htmlProp(p, "copyright", "© 2024") + `</p>
    </footer>`

	case models.ComponentSection:
		return `
    <section class="section">
      <!-- Section content -->
    </section>`
	}

	return "\n    <!-- " + commentSafe(c.ComponentType) + " -->"
}

// renderMarkdown converts markdown source to sanitised HTML.
func (e *Engine) renderMarkdown(src string) (string, bool) {
	var buf bytes.Buffer
	if err := e.markdown.Convert([]byte(src), &buf); err != nil {
		return "", false
	}
	return strings.TrimSpace(e.htmlPolicy.Sanitize(buf.String())), true
}

// commentSafe keeps a type tag from closing the surrounding comment.
func commentSafe(s string) string {
	return strings.NewReplacer("--", "", ">", "", "<", "").Replace(s)
}
