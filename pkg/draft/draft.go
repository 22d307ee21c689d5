package draft

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-draftforms/internal/jsonutil"
)

// UnassignedID marks identifiers the remote store has not assigned yet.
const UnassignedID = -1

// Draft is the single mutable metadata document being edited. All reads and
// writes during editing go through the owning form model; the document is only
// replaced wholesale on fetch, save response, and cancel.
type Draft struct {
	// JSON holds the full record document keyed by top-level property name.
	JSON map[string]any

	// APIID is the store-assigned identifier, UnassignedID until persisted.
	APIID int

	// APIUserID identifies the owning user on the remote store.
	APIUserID int

	// ConceptID is the external catalog identifier, empty until published.
	ConceptID string

	// RevisionID is assigned by the store on each save, UnassignedID before.
	RevisionID int

	// AssociatedCollectionID links record types that reference a parent
	// collection. Empty otherwise.
	AssociatedCollectionID string

	// Errors maps field paths to validation messages reported by the store.
	Errors map[string][]string

	// Key is an opaque freshness token. It changes on every wholesale
	// replacement so dependent views know the whole document moved.
	Key string
}

// New returns an empty draft with store identifiers unassigned.
func New() *Draft {
	return &Draft{
		JSON:       map[string]any{},
		APIID:      UnassignedID,
		APIUserID:  UnassignedID,
		RevisionID: UnassignedID,
		Errors:     map[string][]string{},
		Key:        uuid.NewString(),
	}
}

// Replace swaps the entire draft state atomically with the contents of next
// and refreshes the key. It is the only sanctioned way to apply a store
// response or a cancel re-fetch.
func (d *Draft) Replace(next *Draft) {
	if d == nil || next == nil {
		return
	}
	d.JSON = next.JSON
	if d.JSON == nil {
		d.JSON = map[string]any{}
	}
	d.APIID = next.APIID
	d.APIUserID = next.APIUserID
	d.ConceptID = next.ConceptID
	d.RevisionID = next.RevisionID
	d.AssociatedCollectionID = next.AssociatedCollectionID
	d.Errors = next.Errors
	if d.Errors == nil {
		d.Errors = map[string][]string{}
	}
	d.Key = uuid.NewString()
}

// Persisted reports whether the store has assigned an identifier.
func (d *Draft) Persisted() bool {
	return d != nil && d.APIID != UnassignedID
}

// Normalize rewrites the document as plain serializable JSON data.
func (d *Draft) Normalize() error {
	if d == nil {
		return nil
	}
	normalized, err := jsonutil.Normalize(d.JSON)
	if err != nil {
		return err
	}
	d.JSON = normalized
	return nil
}
