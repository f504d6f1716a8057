// Package export turns a project's pages and components into downloadable
// artifacts: a static HTML document, a JSX module or a JSON snapshot.
package export

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/huangang/sitecraft/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

const (
	FormatHTML  = "html"
	FormatJSON  = "json"
	FormatReact = "react"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var extensions = map[string]string{
	FormatHTML:  "html",
	FormatJSON:  "json",
	FormatReact: "tsx",
}

var contentTypes = map[string]string{
	FormatHTML:  "text/html; charset=utf-8",
	FormatJSON:  "application/json; charset=utf-8",
	FormatReact: "text/plain; charset=utf-8",
}

// whitespaceRun matches the same characters as a JavaScript \s class,
// Unicode space separators included.
var whitespaceRun = regexp.MustCompile(`[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// ValidFormat reports whether format is html, json or react.
func ValidFormat(format string) bool {
	_, ok := extensions[format]
	return ok
}

// FileName builds the download name: the project name lowercased with every
// whitespace run replaced by a hyphen, plus the format's extension.
func FileName(projectName, format string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return whitespaceRun.ReplaceAllString(strings.ToLower(projectName), "-") + "." + ext, nil
}

// ContentType returns the MIME type served for an export format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "text/plain; charset=utf-8"
}

// Engine renders exports. It is safe for concurrent use.
type Engine struct {
	htmlPolicy *bluemonday.Policy
	textPolicy *bluemonday.Policy
	markdown   goldmark.Markdown
}

func NewEngine() *Engine {
	return &Engine{
		htmlPolicy: bluemonday.UGCPolicy(),
		textPolicy: bluemonday.StrictPolicy(),
		markdown:   goldmark.New(),
	}
}

// Export renders the given pages in the requested format. Components are
// looked up per page id; a page without an entry exports as empty.
// The html and react formats render only the homepage (or the first page
// when none is flagged) and return "" when there are no pages at all.
func (e *Engine) Export(pages []models.Page, componentsByPage map[string][]models.Component, projectName, format string) (string, error) {
	switch format {
	case FormatJSON:
		return e.renderJSON(pages, componentsByPage, projectName)
	case FormatHTML, FormatReact:
		home := SelectHomepage(pages)
		if home == nil {
			return "", nil
		}
		components := flatten(componentsByPage[home.ID])
		if format == FormatHTML {
			return e.renderHTMLDocument(*home, components, projectName), nil
		}
		return e.renderJSXModule(*home, components), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// RenderPage renders any single page as a standalone HTML document.
func (e *Engine) RenderPage(page models.Page, components []models.Component, projectName string) string {
	return e.renderHTMLDocument(page, flatten(components), projectName)
}

// SelectHomepage returns the first page flagged as homepage, else the first
// page, else nil.
func SelectHomepage(pages []models.Page) *models.Page {
	for i := range pages {
		if pages[i].IsHomepage {
			return &pages[i]
		}
	}
	if len(pages) > 0 {
		return &pages[0]
	}
	return nil
}

// flatten returns a copy ordered by order_index. Equal indexes keep their
// input order and parent links are ignored.
func flatten(components []models.Component) []models.Component {
	out := make([]models.Component, len(components))
	copy(out, components)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// isFalsy mirrors the placeholder rule: missing, nil, empty string, zero and
// false all fall back.
func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0 || math.IsNaN(t)
	case float32:
		return t == 0 || math.IsNaN(float64(t))
	case int:
		return t == 0
	case int64:
		return t == 0
	case int32:
		return t == 0
	}
	return false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// prop returns props[key] as text, or fallback when the value is falsy.
// A nil map reads as empty.
func prop(props models.JSONMap, key, fallback string) string {
	v, ok := props[key]
	if !ok || isFalsy(v) {
		return fallback
	}
	return stringify(v)
}
