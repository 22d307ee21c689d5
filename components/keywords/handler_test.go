package keywords

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kw "github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/store"
)

func scienceKeywords() []kw.Node {
	return []kw.Node{
		{Value: "EARTH SCIENCE SERVICES", Children: []kw.Node{
			{Value: "DATA ANALYSIS AND VISUALIZATION"},
		}},
	}
}

func TestHandler_ServesVocabularyTree(t *testing.T) {
	h := Handler(WithVocabulary("science_keywords", scienceKeywords()))

	req := httptest.NewRequest(http.MethodGet, "/api/keywords/science_keywords", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload struct {
		Data []kw.Node `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "EARTH SCIENCE SERVICES" {
		t.Fatalf("unexpected payload: %#v", payload.Data)
	}
}

func TestHandler_UnknownVocabularyIs404(t *testing.T) {
	h := Handler(WithVocabulary("science_keywords", scienceKeywords()))

	req := httptest.NewRequest(http.MethodGet, "/api/keywords/platforms", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Result().StatusCode)
	}
}

func TestHandler_RejectsNonGetMethods(t *testing.T) {
	h := Handler(WithVocabulary("science_keywords", scienceKeywords()))

	req := httptest.NewRequest(http.MethodPost, "/api/keywords/science_keywords", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.StatusCode)
	}
	if allow := res.Header.Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header, got %q", allow)
	}
}

func TestHandler_HeadReturnsNoBody(t *testing.T) {
	h := Handler(WithVocabulary("science_keywords", scienceKeywords()))

	req := httptest.NewRequest(http.MethodHead, "/api/keywords/science_keywords", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body for HEAD, got %q", rec.Body.String())
	}
}

func TestHandler_GuardVetoesRequests(t *testing.T) {
	h := Handler(
		WithVocabulary("science_keywords", scienceKeywords()),
		WithGuard(func(r *http.Request) error {
			return store.StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/keywords/science_keywords", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected guard status 401, got %d", rec.Result().StatusCode)
	}
}

func TestMountPath(t *testing.T) {
	if got := MountPath(""); got != "/api/keywords" {
		t.Fatalf("unexpected default mount path %q", got)
	}
	if got := MountPath("/tools"); got != "/tools/api/keywords" {
		t.Fatalf("unexpected mount path %q", got)
	}
	if got := MountPath("tools/", WithRoutePath("keywords")); got != "/tools/keywords" {
		t.Fatalf("unexpected mount path %q", got)
	}
}

func TestRegisterRoutes_ServesThroughServeMux(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "", WithVocabulary("science_keywords", scienceKeywords()))
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	if pattern != "/api/keywords" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/keywords/science_keywords", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200 through mux, got %d", rec.Result().StatusCode)
	}
}

func TestComponent_OptionsAreCopies(t *testing.T) {
	c := New(WithVocabulary("science_keywords", scienceKeywords()))
	opts := c.Options()
	opts.Vocabularies["science_keywords"] = nil
	if got := c.Options().Vocabularies["science_keywords"]; len(got) != 1 {
		t.Fatalf("caller mutation leaked into component options: %#v", got)
	}
}
