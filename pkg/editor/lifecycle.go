package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/goliatone/go-draftforms/pkg/doctype"
	"github.com/goliatone/go-draftforms/pkg/status"
)

// Lifecycle operations run to completion; there is no in-flight cancellation.
// Overlapping operations settle in arbitrary order, so every draft-replacing
// settlement is guarded by a generation counter: an operation's effect is
// discarded when a later-started operation already applied. Callers should
// still disable the triggering control while an operation is in flight.

func (e *Editor) begin() uint64 {
	return atomic.AddUint64(&e.gen, 1)
}

// apply runs fn only when no later-started operation has settled yet.
func (e *Editor) apply(gen uint64, fn func()) bool {
	e.mu.Lock()
	if gen < e.appliedGen {
		e.mu.Unlock()
		return false
	}
	e.appliedGen = gen
	e.mu.Unlock()
	fn()
	return true
}

// Fetch loads a draft by id from the store, replacing the live draft
// wholesale. Failures surface as an "error retrieving draft" status carrying
// the store's error code and are non-fatal; the user may retry.
func (e *Editor) Fetch(ctx context.Context, id int) error {
	gen := e.begin()
	fetched, err := e.store.FetchDraft(ctx, id)
	if err != nil {
		e.apply(gen, func() {
			e.PublishStatus(status.Error(fmt.Sprintf("error retrieving draft! %s", err.Error())))
		})
		return err
	}
	e.apply(gen, func() {
		e.model.ReplaceDraft(fetched)
		e.notify(EventDraftReplaced)
	})
	return nil
}

// CreateNew persists a brand-new empty draft so the store assigns an id
// before editing begins. Failures surface as an "error saving draft" status
// with the store's message.
func (e *Editor) CreateNew(ctx context.Context) error {
	gen := e.begin()
	saved, err := e.store.SaveDraft(ctx, e.Draft())
	if err != nil {
		e.apply(gen, func() {
			e.PublishStatus(status.Error(fmt.Sprintf("error saving draft! %s", err.Error())))
		})
		return err
	}
	e.apply(gen, func() {
		e.model.ReplaceDraft(saved)
		e.notify(EventDraftReplaced)
	})
	return nil
}

// Save persists the current draft. On success the live draft is replaced with
// the store's response, picking up server-assigned identifiers, and an info
// status is published. On failure the local draft is left unchanged so the
// user can retry without re-entering data.
func (e *Editor) Save(ctx context.Context) error {
	_, err := e.save(ctx)
	return err
}

func (e *Editor) save(ctx context.Context) (uint64, error) {
	gen := e.begin()
	saved, err := e.store.SaveDraft(ctx, e.Draft())
	if err != nil {
		e.apply(gen, func() {
			e.PublishStatus(status.Error(fmt.Sprintf("Error saving draft! %s", err.Error())))
		})
		return gen, err
	}
	e.apply(gen, func() {
		e.model.ReplaceDraft(saved)
		e.notify(EventDraftReplaced)
		e.PublishStatus(status.Info("Draft Saved"))
	})
	return gen, nil
}

// SaveAndContinue saves, then advances to the next section (staying put when
// already on the last) and performs a client-side navigation to the new
// section's URL.
func (e *Editor) SaveAndContinue(ctx context.Context) error {
	if err := e.Save(ctx); err != nil {
		return err
	}
	next := e.model.AdvanceSection()
	e.notify(EventSectionChanged)
	if e.navigate != nil {
		e.navigate(e.SectionPath(next))
	}
	return nil
}

// SaveAndPublish saves first and only on success asks the store to publish
// the saved draft. Either step's failure publishes a status naming which step
// failed; publish success replaces the live draft with the publish response.
func (e *Editor) SaveAndPublish(ctx context.Context) error {
	if _, err := e.save(ctx); err != nil {
		return err
	}
	gen := e.begin()
	published, err := e.store.PublishDraft(ctx, e.Draft())
	if err != nil {
		e.apply(gen, func() {
			e.PublishStatus(status.Error(fmt.Sprintf("Error publishing draft! %s", err.Error())))
		})
		return err
	}
	e.apply(gen, func() {
		e.model.ReplaceDraft(published)
		e.notify(EventDraftReplaced)
	})
	return nil
}

// Cancel re-fetches the draft by its persisted id, discarding all unsaved
// local edits.
func (e *Editor) Cancel(ctx context.Context) error {
	gen := e.begin()
	fetched, err := e.store.FetchDraft(ctx, e.Draft().APIID)
	if err != nil {
		e.apply(gen, func() {
			e.PublishStatus(status.Error(fmt.Sprintf("Error cancelling. %s", err.Error())))
		})
		return err
	}
	e.apply(gen, func() {
		e.model.ReplaceDraft(fetched)
		e.notify(EventDraftReplaced)
		e.PublishStatus(status.Info("Changes discarded"))
	})
	return nil
}

func sectionPath(documentType string, apiID int, section doctype.FormSection) string {
	name := strings.ReplaceAll(section.DisplayName, " ", "_")
	return "/" + documentType + "/" + strconv.Itoa(apiID) + "/edit/" + name
}
