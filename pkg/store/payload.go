package store

import "github.com/goliatone/go-draftforms/pkg/draft"

// Payload is the draft wire representation shared by the HTTP client and the
// reference server implementation.
type Payload struct {
	Draft                  map[string]any      `json:"draft"`
	ID                     int                 `json:"id"`
	UserID                 int                 `json:"user_id"`
	ConceptID              string              `json:"concept_id,omitempty"`
	RevisionID             int                 `json:"revision_id,omitempty"`
	AssociatedCollectionID string              `json:"associated_collection_id,omitempty"`
	Errors                 map[string][]string `json:"errors,omitempty"`
}

// ToDraft converts a wire payload into a draft entity with a fresh key.
func (p Payload) ToDraft() *draft.Draft {
	d := draft.New()
	if p.Draft != nil {
		d.JSON = p.Draft
	}
	if p.ID != 0 {
		d.APIID = p.ID
	}
	if p.UserID != 0 {
		d.APIUserID = p.UserID
	}
	d.ConceptID = p.ConceptID
	if p.RevisionID != 0 {
		d.RevisionID = p.RevisionID
	}
	d.AssociatedCollectionID = p.AssociatedCollectionID
	if p.Errors != nil {
		d.Errors = p.Errors
	}
	return d
}

// FromDraft converts a draft entity into its wire representation.
func FromDraft(d *draft.Draft) Payload {
	if d == nil {
		return Payload{}
	}
	p := Payload{
		Draft:                  d.JSON,
		ID:                     d.APIID,
		UserID:                 d.APIUserID,
		ConceptID:              d.ConceptID,
		AssociatedCollectionID: d.AssociatedCollectionID,
	}
	if d.RevisionID != draft.UnassignedID {
		p.RevisionID = d.RevisionID
	}
	if len(d.Errors) > 0 {
		p.Errors = d.Errors
	}
	return p
}
