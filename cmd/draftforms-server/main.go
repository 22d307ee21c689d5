package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	keywordscomponent "github.com/goliatone/go-draftforms/components/keywords"
	"github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/store"
	"github.com/goliatone/go-draftforms/pkg/store/sqlite"
)

func main() {
	var (
		addr         string
		dbPath       string
		draftType    string
		keywordsFile string
	)

	root := &cobra.Command{
		Use:   "draftforms-server",
		Short: "Development draft store and keyword endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := sqlite.Open(dbPath, draftType)
			if err != nil {
				return err
			}
			defer drafts.Close()

			vocabularies, err := loadVocabularies(keywordsFile)
			if err != nil {
				return err
			}

			router := chi.NewRouter()
			router.Use(middleware.Logger)
			router.Use(middleware.Recoverer)

			mountDraftAPI(router, drafts, draftType)

			component := keywordscomponent.New(func(o *keywordscomponent.Options) {
				o.Vocabularies = vocabularies
			})
			router.Mount(component.Options().RoutePath, component.Handler())

			log.Printf("listening on %s (draft_type=%s db=%s)", addr, draftType, dbPath)
			return http.ListenAndServe(addr, router)
		},
	}

	root.Flags().StringVar(&addr, "addr", ":4000", "listen address")
	root.Flags().StringVar(&dbPath, "db", "drafts.db", "sqlite database path")
	root.Flags().StringVar(&draftType, "draft-type", "ToolDraft", "record type stored by this server")
	root.Flags().StringVar(&keywordsFile, "keywords", "", "JSON file of vocabulary trees")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func mountDraftAPI(router chi.Router, drafts store.DraftStore, draftType string) {
	router.Route("/api/drafts", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			if !checkDraftType(w, req, draftType) {
				return
			}
			payload, ok := decodePayload(w, req)
			if !ok {
				return
			}
			saved, err := drafts.SaveDraft(req.Context(), payload.ToDraft())
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writePayload(w, http.StatusCreated, store.FromDraft(saved))
		})

		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if !checkDraftType(w, req, draftType) {
				return
			}
			id, ok := draftID(w, req)
			if !ok {
				return
			}
			fetched, err := drafts.FetchDraft(req.Context(), id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writePayload(w, http.StatusOK, store.FromDraft(fetched))
		})

		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if !checkDraftType(w, req, draftType) {
				return
			}
			id, ok := draftID(w, req)
			if !ok {
				return
			}
			payload, ok := decodePayload(w, req)
			if !ok {
				return
			}
			payload.ID = id
			saved, err := drafts.SaveDraft(req.Context(), payload.ToDraft())
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writePayload(w, http.StatusOK, store.FromDraft(saved))
		})

		r.Post("/{id}/publish", func(w http.ResponseWriter, req *http.Request) {
			if !checkDraftType(w, req, draftType) {
				return
			}
			id, ok := draftID(w, req)
			if !ok {
				return
			}
			fetched, err := drafts.FetchDraft(req.Context(), id)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			published, err := drafts.PublishDraft(req.Context(), fetched)
			if err != nil {
				writeStoreError(w, err)
				return
			}
			writePayload(w, http.StatusOK, store.FromDraft(published))
		})
	})
}

func checkDraftType(w http.ResponseWriter, req *http.Request, draftType string) bool {
	requested := strings.TrimSpace(req.URL.Query().Get("draft_type"))
	if requested != "" && requested != draftType {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}

func draftID(w http.ResponseWriter, req *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil || id <= 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func decodePayload(w http.ResponseWriter, req *http.Request) (store.Payload, bool) {
	var payload store.Payload
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return store.Payload{}, false
	}
	return payload, true
}

func writePayload(w http.ResponseWriter, code int, payload store.Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeStoreError(w http.ResponseWriter, err error) {
	var httpErr store.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, http.StatusText(httpErr.StatusCode()), httpErr.StatusCode())
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func loadVocabularies(path string) (map[string][]keywords.Node, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vocabularies map[string][]keywords.Node
	if err := json.Unmarshal(data, &vocabularies); err != nil {
		return nil, err
	}
	return vocabularies, nil
}
