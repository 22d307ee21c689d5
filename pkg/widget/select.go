package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-draftforms/pkg/formmodel"
	"github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/status"
)

// ClearLabel marks the synthetic option that clears the current selection.
// It is always the first entry regardless of where the enumeration came from.
const ClearLabel = "✓"

// StatusPublisher receives widget-level status messages, typically the
// surrounding editor.
type StatusPublisher interface {
	PublishStatus(status.Status)
}

// Option is one selectable entry. The clear sentinel has an empty value.
type Option struct {
	Value string
	Label string
}

// Config describes one controlled-select widget instance.
type Config struct {
	// ID is the field identifier used for focus addressing.
	ID string

	// Title is the display label.
	Title string

	// Section and Property key the enumeration cache entry this widget
	// populates.
	Section  string
	Property string

	// Schema is the property schema from the current schema slice.
	Schema map[string]any

	// Definitions resolves #/definitions/... items references.
	Definitions map[string]any

	// Vocabulary and ControlName describe the ui:controlled triple. When both
	// are set and a Service is available the widget resolves keywords
	// asynchronously.
	Vocabulary  string
	ControlName string

	Service keywords.Service
	Enums   *formmodel.EnumCache
	Status  StatusPublisher

	Required    bool
	Disabled    bool
	Placeholder string
}

// ControlledSelect renders one schema property whose enumeration is either
// statically declared or sourced from a keyword service.
type ControlledSelect struct {
	cfg Config

	mu        sync.Mutex
	loading   bool
	lastClaim bool
}

// New validates the configuration and builds a widget.
func New(cfg Config) (*ControlledSelect, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, errors.New("widget: field id is required")
	}
	if cfg.Schema == nil {
		return nil, errors.New("widget: property schema is required")
	}
	return &ControlledSelect{cfg: cfg}, nil
}

// Loading reports whether a keyword fetch is in flight.
func (w *ControlledSelect) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// Resolve fetches the controlled vocabulary and records the first path
// segments into the enumeration cache, so the schema slice recomputed on the
// next render surfaces them. A fetch failure never blocks rendering: loading
// state is cleared, a warning status is published, and the field falls back
// to whatever static enum exists.
func (w *ControlledSelect) Resolve(ctx context.Context) {
	name := strings.TrimSpace(w.cfg.Vocabulary)
	controlName := strings.TrimSpace(w.cfg.ControlName)
	if name == "" || controlName == "" || w.cfg.Service == nil {
		return
	}

	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	paths, err := w.cfg.Service.FetchKeywords(ctx, name)

	w.mu.Lock()
	w.loading = false
	w.mu.Unlock()

	if err != nil {
		if w.cfg.Status != nil {
			w.cfg.Status.PublishStatus(status.Warning(fmt.Sprintf("Error retrieving %s keywords", name)))
		}
		return
	}
	if w.cfg.Enums != nil {
		w.cfg.Enums.Set(w.cfg.Section, w.cfg.Property, keywords.FirstSegments(paths))
	}
}

// Options builds the selectable entries. Enumeration source order: the
// schema's own enum when non-empty, otherwise the enum of the resolved items
// sub-schema for array-typed fields, otherwise none. The clear sentinel is
// always prepended. Cached keyword enumerations take precedence since the
// slice builder overlays them onto the schema before rendering; this method
// additionally consults the cache directly so widgets built from a stale
// slice still see fetched values.
func (w *ControlledSelect) Options() []Option {
	options := []Option{{Value: "", Label: ClearLabel}}

	values := w.enumValues()
	for _, value := range values {
		if value == "" {
			continue
		}
		options = append(options, Option{Value: value, Label: value})
	}
	return options
}

// Placeholder returns the configured placeholder or "Select <title>".
func (w *ControlledSelect) Placeholder() string {
	if strings.TrimSpace(w.cfg.Placeholder) != "" {
		return w.cfg.Placeholder
	}
	return "Select " + w.cfg.Title
}

// ClaimFocus reports whether this widget claims the wanted focus id.
func (w *ControlledSelect) ClaimFocus(wanted string) bool {
	return ClaimsFocus(w.cfg.ID, wanted)
}

// ScrollIntent reports whether the widget should scroll itself into view:
// true exactly once each time the focus claim newly holds.
func (w *ControlledSelect) ScrollIntent(wanted string) bool {
	claim := w.ClaimFocus(wanted)
	w.mu.Lock()
	defer w.mu.Unlock()
	newly := claim && !w.lastClaim
	w.lastClaim = claim
	return newly
}

func (w *ControlledSelect) enumValues() []string {
	if w.cfg.Enums != nil {
		if cached, ok := w.cfg.Enums.Get(w.cfg.Section, w.cfg.Property); ok {
			return cached
		}
	}
	if values := enumStrings(w.cfg.Schema["enum"]); len(values) > 0 {
		return values
	}
	if items := w.resolveItems(); items != nil {
		return enumStrings(items["enum"])
	}
	return nil
}

// resolveItems follows an items reference on array-typed fields, either an
// inline sub-schema or a #/definitions pointer.
func (w *ControlledSelect) resolveItems() map[string]any {
	raw, ok := w.cfg.Schema["items"]
	if !ok {
		return nil
	}
	items, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	ref, ok := items["$ref"].(string)
	if !ok {
		return items
	}
	const prefix = "#/definitions/"
	if !strings.HasPrefix(ref, prefix) || w.cfg.Definitions == nil {
		return nil
	}
	resolved, ok := w.cfg.Definitions[strings.TrimPrefix(ref, prefix)].(map[string]any)
	if !ok {
		return nil
	}
	return resolved
}

func enumStrings(raw any) []string {
	switch values := raw.(type) {
	case []any:
		out := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), values...)
	default:
		return nil
	}
}
