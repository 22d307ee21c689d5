package doctype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-draftforms/pkg/uischema"
)

// FormSection names an ordered subset of a schema's top-level properties that
// is edited together as one page. Sections are immutable once defined.
type FormSection struct {
	// DisplayName is the human label and the navigation/URL key.
	DisplayName string

	// Properties lists the top-level schema property names owned by this
	// section, in render order.
	Properties []string
}

// DocumentType is the capability set every metadata record type must supply.
// Each record type is a variant implementing this interface; a missing
// capability is a compile-time error rather than a runtime throw.
type DocumentType interface {
	// Schema returns the full versioned JSON Schema for the record type.
	Schema() map[string]any

	// FormSections returns the ordered section layout. The sections must
	// partition the schema's top-level properties.
	FormSections() []FormSection

	// UISchema returns per-field rendering hints keyed by property name.
	UISchema() map[string]uischema.FieldConfig

	// DocumentType is the machine name, also the URL path segment
	// (e.g. "tool_draft").
	DocumentType() string

	// DocumentTypeForDisplay is the human-facing record type name.
	DocumentTypeForDisplay() string

	// SectionAliases maps retired section display names to their current
	// canonical names, keeping old bookmarks working.
	SectionAliases() map[string]string
}

// Definition is a data-driven DocumentType. Build one with NewDefinition so
// the section layout is validated against the schema up front.
type Definition struct {
	schema   map[string]any
	sections []FormSection
	uiSchema map[string]uischema.FieldConfig
	name     string
	display  string
	aliases  map[string]string
}

var _ DocumentType = (*Definition)(nil)

// Config carries the inputs for NewDefinition.
type Config struct {
	Schema         map[string]any
	Sections       []FormSection
	UISchema       map[string]uischema.FieldConfig
	Name           string
	DisplayName    string
	SectionAliases map[string]string
}

// NewDefinition validates and builds a document type definition. It fails when
// the section layout does not partition the schema's top-level properties,
// which indicates an incompletely wired record type.
func NewDefinition(cfg Config) (*Definition, error) {
	if cfg.Schema == nil {
		return nil, errors.New("doctype: schema is required")
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, errors.New("doctype: name is required")
	}
	if len(cfg.Sections) == 0 {
		return nil, fmt.Errorf("doctype: %s defines no sections", name)
	}
	if err := ValidateSections(cfg.Schema, cfg.Sections); err != nil {
		return nil, fmt.Errorf("doctype: %s: %w", name, err)
	}

	display := strings.TrimSpace(cfg.DisplayName)
	if display == "" {
		display = name
	}

	def := &Definition{
		schema:   cfg.Schema,
		sections: append([]FormSection(nil), cfg.Sections...),
		uiSchema: cfg.UISchema,
		name:     name,
		display:  display,
	}
	if len(cfg.SectionAliases) > 0 {
		def.aliases = make(map[string]string, len(cfg.SectionAliases))
		for old, current := range cfg.SectionAliases {
			def.aliases[old] = current
		}
	}
	return def, nil
}

// MustNewDefinition panics if the definition cannot be created. Useful when
// wiring record types at program start.
func MustNewDefinition(cfg Config) *Definition {
	def, err := NewDefinition(cfg)
	if err != nil {
		panic(err)
	}
	return def
}

func (d *Definition) Schema() map[string]any { return d.schema }

func (d *Definition) FormSections() []FormSection {
	return append([]FormSection(nil), d.sections...)
}

func (d *Definition) UISchema() map[string]uischema.FieldConfig { return d.uiSchema }

func (d *Definition) DocumentType() string { return d.name }

func (d *Definition) DocumentTypeForDisplay() string { return d.display }

func (d *Definition) SectionAliases() map[string]string { return d.aliases }

// ValidateSections checks that sections partition the schema's top-level
// property set: every property belongs to exactly one section and no section
// claims a property twice.
func ValidateSections(schema map[string]any, sections []FormSection) error {
	props := topLevelProperties(schema)

	claimed := make(map[string]string, len(props))
	for _, section := range sections {
		if strings.TrimSpace(section.DisplayName) == "" {
			return errors.New("section display name is empty")
		}
		for _, property := range section.Properties {
			if owner, ok := claimed[property]; ok {
				return fmt.Errorf("property %q claimed by both %q and %q", property, owner, section.DisplayName)
			}
			claimed[property] = section.DisplayName
		}
	}

	for property := range props {
		if _, ok := claimed[property]; !ok {
			return fmt.Errorf("property %q belongs to no section", property)
		}
	}
	return nil
}

func topLevelProperties(schema map[string]any) map[string]any {
	raw, ok := schema["properties"]
	if !ok {
		return nil
	}
	props, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return props
}
