package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-draftforms/pkg/draft"
	"github.com/goliatone/go-draftforms/pkg/store"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS drafts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	draft_type TEXT NOT NULL,
	user_id INTEGER NOT NULL DEFAULT 0,
	json TEXT NOT NULL DEFAULT '{}',
	concept_id TEXT NOT NULL DEFAULT '',
	revision_id INTEGER NOT NULL DEFAULT 1,
	associated_collection_id TEXT NOT NULL DEFAULT ''
);`

// Store is a reference draft store on a local SQLite database. It backs the
// development server and integration-style tests; production deployments use
// the remote draft API instead.
type Store struct {
	db        *sql.DB
	draftType string
}

var _ store.DraftStore = (*Store)(nil)

// Open creates or opens the database at path and prepares the drafts table.
// Use ":memory:" for throwaway stores.
func Open(path, draftType string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if strings.TrimSpace(draftType) == "" {
		return nil, errors.New("sqlite: draft type is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: prepare schema: %w", err)
	}
	return &Store{db: db, draftType: draftType}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchDraft retrieves a draft by id. Missing rows surface as a 404-coded
// error so the editor renders the same message as the remote store.
func (s *Store) FetchDraft(ctx context.Context, id int) (*draft.Draft, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, json, concept_id, revision_id, associated_collection_id
		 FROM drafts WHERE id = ? AND draft_type = ?`, id, s.draftType)
	return scanDraft(row)
}

// SaveDraft inserts a new row for unassigned drafts and otherwise updates the
// stored document, bumping the revision.
func (s *Store) SaveDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error) {
	if d == nil {
		return nil, errors.New("sqlite: draft is required")
	}
	payload, err := json.Marshal(d.JSON)
	if err != nil {
		return nil, fmt.Errorf("sqlite: marshal document: %w", err)
	}

	if !d.Persisted() {
		result, err := s.db.ExecContext(ctx,
			`INSERT INTO drafts (draft_type, user_id, json, associated_collection_id)
			 VALUES (?, ?, ?, ?)`,
			s.draftType, normalizeUser(d.APIUserID), string(payload), d.AssociatedCollectionID)
		if err != nil {
			return nil, fmt.Errorf("sqlite: insert draft: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("sqlite: read insert id: %w", err)
		}
		return s.FetchDraft(ctx, int(id))
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE drafts SET json = ?, revision_id = revision_id + 1, associated_collection_id = ?
		 WHERE id = ? AND draft_type = ?`,
		string(payload), d.AssociatedCollectionID, d.APIID, s.draftType)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: read update count: %w", err)
	}
	if affected == 0 {
		return nil, store.StatusError{Code: http.StatusNotFound}
	}
	return s.FetchDraft(ctx, d.APIID)
}

// PublishDraft assigns a concept id on first publish and bumps the revision.
func (s *Store) PublishDraft(ctx context.Context, d *draft.Draft) (*draft.Draft, error) {
	if d == nil || !d.Persisted() {
		return nil, errors.New("sqlite: draft has not been saved")
	}
	current, err := s.FetchDraft(ctx, d.APIID)
	if err != nil {
		return nil, err
	}
	conceptID := current.ConceptID
	if conceptID == "" {
		conceptID = fmt.Sprintf("C%08d-LOCAL", d.APIID)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE drafts SET concept_id = ?, revision_id = revision_id + 1
		 WHERE id = ? AND draft_type = ?`,
		conceptID, d.APIID, s.draftType); err != nil {
		return nil, fmt.Errorf("sqlite: publish draft: %w", err)
	}
	return s.FetchDraft(ctx, d.APIID)
}

func scanDraft(row *sql.Row) (*draft.Draft, error) {
	var (
		id         int
		userID     int
		payload    string
		conceptID  string
		revisionID int
		collection string
	)
	if err := row.Scan(&id, &userID, &payload, &conceptID, &revisionID, &collection); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.StatusError{Code: http.StatusNotFound}
		}
		return nil, fmt.Errorf("sqlite: scan draft: %w", err)
	}

	d := draft.New()
	d.APIID = id
	d.APIUserID = userID
	d.ConceptID = conceptID
	d.RevisionID = revisionID
	d.AssociatedCollectionID = collection
	if err := json.Unmarshal([]byte(payload), &d.JSON); err != nil {
		return nil, fmt.Errorf("sqlite: decode document: %w", err)
	}
	return d, nil
}

func normalizeUser(id int) int {
	if id == draft.UnassignedID {
		return 0
	}
	return id
}
