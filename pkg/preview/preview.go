package preview

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-draftforms/pkg/formmodel"
)

// defaultTemplate renders a plain-text section summary: one line per answered
// field, unanswered fields marked explicitly.
const defaultTemplate = `{{ documentType }} / {{ section }}
{% for field in fields %}{{ field.label }}: {% if field.answered %}{{ field.value }}{% else %}(not answered){% endif %}
{% endfor %}`

// Renderer produces a human-readable summary of the current section from the
// schema slice and the projected form data. It backs the save-and-preview
// flow.
type Renderer struct {
	tmpl *pongo2.Template
}

// New builds a renderer from the supplied template content, falling back to
// the built-in summary template when empty.
func New(templateContent string) (*Renderer, error) {
	if templateContent == "" {
		templateContent = defaultTemplate
	}
	tmpl, err := pongo2.FromString(templateContent)
	if err != nil {
		return nil, fmt.Errorf("preview: parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderSection renders the model's current section.
func (r *Renderer) RenderSection(model *formmodel.FormModel) (string, error) {
	if r == nil || r.tmpl == nil {
		return "", errors.New("preview: renderer is not initialised")
	}
	if model == nil {
		return "", errors.New("preview: form model is required")
	}

	slice := model.FormSchema()
	data := model.FormData()
	section := model.CurrentSection()

	fields := make([]map[string]any, 0, len(slice.Properties))
	for _, prop := range slice.Properties {
		label := prop.Name
		if title, ok := prop.Schema["title"].(string); ok && title != "" {
			label = title
		}
		value, answered := data[prop.Name]
		fields = append(fields, map[string]any{
			"name":     prop.Name,
			"label":    label,
			"value":    value,
			"answered": answered,
		})
	}

	out, err := r.tmpl.Execute(pongo2.Context{
		"documentType": model.DocumentType().DocumentTypeForDisplay(),
		"section":      section.DisplayName,
		"fields":       fields,
	})
	if err != nil {
		return "", fmt.Errorf("preview: render section %s: %w", section.DisplayName, err)
	}
	return out, nil
}
