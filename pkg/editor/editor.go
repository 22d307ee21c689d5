package editor

import (
	"errors"
	"sync"

	"github.com/goliatone/go-draftforms/pkg/doctype"
	"github.com/goliatone/go-draftforms/pkg/draft"
	"github.com/goliatone/go-draftforms/pkg/formmodel"
	"github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/status"
	"github.com/goliatone/go-draftforms/pkg/store"
)

// EventKind names a state change published to subscribers.
type EventKind string

const (
	EventDraftReplaced  EventKind = "draft-replaced"
	EventStatusChanged  EventKind = "status-changed"
	EventSectionChanged EventKind = "section-changed"
	EventFocusChanged   EventKind = "focus-changed"
)

// Event is delivered to subscribers after every editor state change, so bound
// views re-render without polling.
type Event struct {
	Kind EventKind
}

// Subscriber receives editor change events.
type Subscriber func(Event)

// Navigator performs a client-side navigation to the supplied path.
type Navigator func(path string)

// Editor orchestrates the draft lifecycle: fetch, save, publish, cancel, and
// section navigation against a remote draft store, surfacing a single current
// status message. One editor owns one live draft per session.
type Editor struct {
	model    *formmodel.FormModel
	store    store.DraftStore
	keywords keywords.Service
	navigate Navigator

	mu          sync.Mutex
	status      status.Status
	focusField  string
	subscribers []Subscriber

	gen        uint64
	appliedGen uint64
}

// Option configures an editor.
type Option func(*Editor)

// WithNavigator installs the client-side navigation hook used by save and
// continue.
func WithNavigator(nav Navigator) Option {
	return func(e *Editor) { e.navigate = nav }
}

// WithKeywordService installs the controlled-vocabulary resolver handed to
// field widgets.
func WithKeywordService(svc keywords.Service) Option {
	return func(e *Editor) { e.keywords = svc }
}

// New builds an editor around a form model and a draft store.
func New(model *formmodel.FormModel, draftStore store.DraftStore, options ...Option) (*Editor, error) {
	if model == nil {
		return nil, errors.New("editor: form model is required")
	}
	if draftStore == nil {
		return nil, errors.New("editor: draft store is required")
	}
	e := &Editor{model: model, store: draftStore}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e, nil
}

// Model exposes the owned form model.
func (e *Editor) Model() *formmodel.FormModel { return e.model }

// Draft exposes the live draft.
func (e *Editor) Draft() *draft.Draft { return e.model.Draft() }

// Keywords returns the configured keyword service, possibly nil.
func (e *Editor) Keywords() keywords.Service { return e.keywords }

// Subscribe registers a change listener. Subscribers run synchronously on the
// goroutine that applied the change.
func (e *Editor) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.mu.Unlock()
}

func (e *Editor) notify(kind EventKind) {
	e.mu.Lock()
	subscribers := append([]Subscriber(nil), e.subscribers...)
	e.mu.Unlock()
	for _, fn := range subscribers {
		fn(Event{Kind: kind})
	}
}

// Status returns the current status message.
func (e *Editor) Status() status.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// PublishStatus replaces the current status and notifies subscribers.
func (e *Editor) PublishStatus(s status.Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
	e.notify(EventStatusChanged)
}

// ClearStatus removes the current status.
func (e *Editor) ClearStatus() {
	e.mu.Lock()
	e.status = status.Status{}
	e.mu.Unlock()
	e.notify(EventStatusChanged)
}

// FocusField returns the id of the field that currently wants focus.
func (e *Editor) FocusField() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focusField
}

// SetFocusField records which field wants focus, typically after a
// validation-error jump.
func (e *Editor) SetFocusField(id string) {
	e.mu.Lock()
	e.focusField = id
	e.mu.Unlock()
	e.notify(EventFocusChanged)
}

// CurrentSection returns the section being edited.
func (e *Editor) CurrentSection() doctype.FormSection {
	return e.model.CurrentSection()
}

// NavigateToSection moves the editor to the named section, resolving retired
// names through the document type's alias table first.
func (e *Editor) NavigateToSection(name string) error {
	if err := e.model.SetCurrentSection(name); err != nil {
		return err
	}
	e.notify(EventSectionChanged)
	return nil
}

// SectionPath builds the client-side navigation target for a section:
// /<documentType>/<draftId>/edit/<displayName with spaces as underscores>.
func (e *Editor) SectionPath(section doctype.FormSection) string {
	return sectionPath(e.model.DocumentType().DocumentType(), e.Draft().APIID, section)
}
