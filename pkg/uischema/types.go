package uischema

// Store keeps parsed UI schema documents keyed by document type. It is safe
// for concurrent readers when treated as immutable after construction.
type Store struct {
	documents map[string]Document
}

// Document carries the rendering hints for one metadata record type.
type Document struct {
	DocumentType string
	Source       string
	Fields       map[string]FieldConfig
}

// FieldConfig customises how one top-level property renders.
type FieldConfig struct {
	Widget      string      `json:"widget,omitempty" yaml:"widget,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string      `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Controlled  *Controlled `json:"controlled,omitempty" yaml:"controlled,omitempty"`
}

// Controlled is the ui:controlled triple binding a field to an external
// vocabulary: the service-side vocabulary name and the control name whose
// candidate values come from the first segment of each keyword path.
type Controlled struct {
	Name        string `json:"name" yaml:"name"`
	ControlName string `json:"controlName" yaml:"controlName"`
}

// Document returns the hints for a document type.
func (s *Store) Document(documentType string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.documents[documentType]
	return doc, ok
}

// Field returns the hints for one property of a document type.
func (s *Store) Field(documentType, property string) (FieldConfig, bool) {
	doc, ok := s.Document(documentType)
	if !ok {
		return FieldConfig{}, false
	}
	cfg, ok := doc.Fields[property]
	return cfg, ok
}

// DocumentTypes lists the known document types.
func (s *Store) DocumentTypes() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.documents))
	for name := range s.documents {
		out = append(out, name)
	}
	return out
}
