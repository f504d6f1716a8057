package export

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/huangang/sitecraft/internal/models"
)

// PageSnapshot is a page with its component list inlined.
type PageSnapshot struct {
	models.Page
	Components []models.Component `json:"components"`
}

// Snapshot is the JSON export document.
type Snapshot struct {
	Project string         `json:"project"`
	Pages   []PageSnapshot `json:"pages"`
}

func (e *Engine) renderJSON(pages []models.Page, componentsByPage map[string][]models.Component, projectName string) (string, error) {
	doc := Snapshot{Project: projectName, Pages: make([]PageSnapshot, 0, len(pages))}
	for _, p := range pages {
		components := componentsByPage[p.ID]
		if components == nil {
			components = []models.Component{}
		}
		doc.Pages = append(doc.Pages, PageSnapshot{Page: p, Components: components})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
