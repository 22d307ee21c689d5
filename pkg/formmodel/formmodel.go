package formmodel

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-draftforms/internal/jsonutil"
	"github.com/goliatone/go-draftforms/pkg/doctype"
	"github.com/goliatone/go-draftforms/pkg/draft"
)

// FormModel owns the full schema, the current section pointer, and the
// read/write projection between the draft document and the active section's
// form data. The draft document is the single source of truth; form data is
// always a projection, never a separate store.
type FormModel struct {
	docType  doctype.DocumentType
	draft    *draft.Draft
	sections []doctype.FormSection
	current  int
	enums    *EnumCache
}

// New builds a form model for the supplied document type, pointing at the
// first section. The draft may start empty; it is populated by the lifecycle
// controller on fetch.
func New(docType doctype.DocumentType, d *draft.Draft) (*FormModel, error) {
	if docType == nil {
		return nil, errors.New("formmodel: document type is required")
	}
	sections := docType.FormSections()
	if len(sections) == 0 {
		return nil, fmt.Errorf("formmodel: document type %s defines no sections", docType.DocumentType())
	}
	if d == nil {
		d = draft.New()
	}
	return &FormModel{
		docType:  docType,
		draft:    d,
		sections: sections,
		enums:    NewEnumCache(),
	}, nil
}

// Draft exposes the underlying draft entity.
func (m *FormModel) Draft() *draft.Draft { return m.draft }

// ReplaceDraft atomically swaps the whole document, as happens on fetch and
// cancel. Field-level edits must go through SetFormData instead.
func (m *FormModel) ReplaceDraft(next *draft.Draft) {
	m.draft.Replace(next)
}

// DocumentType exposes the record type capabilities backing this model.
func (m *FormModel) DocumentType() doctype.DocumentType { return m.docType }

// Enums exposes the owned enumeration cache consulted by FormSchema.
func (m *FormModel) Enums() *EnumCache { return m.enums }

// FormSections returns the ordered section layout.
func (m *FormModel) FormSections() []doctype.FormSection {
	return append([]doctype.FormSection(nil), m.sections...)
}

// CurrentSection returns the section being edited.
func (m *FormModel) CurrentSection() doctype.FormSection {
	return m.sections[m.current]
}

// SetCurrentSection moves the section pointer to the named section. The name
// is passed through MigratedSectionName first so retired names from old
// bookmarks keep resolving.
func (m *FormModel) SetCurrentSection(name string) error {
	resolved := m.MigratedSectionName(name)
	for idx, section := range m.sections {
		if section.DisplayName == resolved {
			m.current = idx
			return nil
		}
	}
	return fmt.Errorf("formmodel: unknown section %q", name)
}

// AdvanceSection moves to the next section in order and returns it. It stays
// on the last section when there is nothing after it.
func (m *FormModel) AdvanceSection() doctype.FormSection {
	if m.current < len(m.sections)-1 {
		m.current++
	}
	return m.sections[m.current]
}

// MigratedSectionName resolves a possibly-stale section name to the current
// canonical display name, falling back to the input when no alias matches.
func (m *FormModel) MigratedSectionName(name string) string {
	if current, ok := m.docType.SectionAliases()[name]; ok {
		return current
	}
	return name
}

// FormData projects the draft document onto the current section. A property
// is included only when the document holds a non-absent value for it, so the
// renderer can tell "not yet answered" from "explicitly empty". No defaults
// are synthesised.
func (m *FormModel) FormData() map[string]any {
	data := map[string]any{}
	for _, property := range m.CurrentSection().Properties {
		value, ok := m.draft.JSON[property]
		if !ok || value == nil {
			continue
		}
		data[property] = value
	}
	return data
}

// SetFormData writes the active section's edits back into the draft
// document. Properties of the current section that are missing from value are
// removed, matching the overwrite-with-absent semantics of the wire format.
// The document is then normalized to plain serializable data.
func (m *FormModel) SetFormData(value map[string]any) error {
	for _, property := range m.CurrentSection().Properties {
		next, ok := value[property]
		if !ok || next == nil {
			delete(m.draft.JSON, property)
			continue
		}
		m.draft.JSON[property] = next
	}
	return m.draft.Normalize()
}

// FormSchema computes the schema slice for the current section: the section's
// properties in order plus $id, $schema, definitions, and required carried
// verbatim from the full schema. Section entries absent from the full
// schema's properties are omitted rather than failing, since section layouts
// and schema versions may drift. Cached enumerations overlay the property
// schemas so asynchronously fetched options appear on the next render.
func (m *FormModel) FormSchema() *Slice {
	full := m.docType.Schema()
	section := m.CurrentSection()

	slice := &Slice{}
	if id, ok := full["$id"].(string); ok {
		slice.ID = id
	}
	if uri, ok := full["$schema"].(string); ok {
		slice.SchemaURI = uri
	}
	if defs, ok := full["definitions"].(map[string]any); ok {
		slice.Definitions = defs
	}
	if required, ok := full["required"].([]any); ok {
		names := make([]string, 0, len(required))
		for _, entry := range required {
			if name, ok := entry.(string); ok {
				names = append(names, name)
			}
		}
		slice.Required = names
	} else if required, ok := full["required"].([]string); ok {
		slice.Required = append([]string(nil), required...)
	}

	props, _ := full["properties"].(map[string]any)
	for _, property := range section.Properties {
		raw, ok := props[property]
		if !ok {
			continue
		}
		propSchema, ok := jsonutil.Copy(raw).(map[string]any)
		if !ok {
			continue
		}
		if values, ok := m.enums.Get(section.DisplayName, property); ok {
			enum := make([]any, 0, len(values))
			for _, value := range values {
				enum = append(enum, value)
			}
			propSchema["enum"] = enum
		}
		slice.Properties = append(slice.Properties, SliceProperty{Name: property, Schema: propSchema})
	}
	return slice
}
