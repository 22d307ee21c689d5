package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-draftforms/pkg/formmodel"
	"github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/status"
)

type fakeService struct {
	paths []keywords.Path
	err   error
	calls []string
}

func (s *fakeService) FetchKeywords(_ context.Context, vocabulary string) ([]keywords.Path, error) {
	s.calls = append(s.calls, vocabulary)
	return s.paths, s.err
}

type statusRecorder struct {
	published []status.Status
}

func (r *statusRecorder) PublishStatus(s status.Status) {
	r.published = append(r.published, s)
}

func TestNew_Validates(t *testing.T) {
	if _, err := New(Config{Schema: map[string]any{}}); err == nil {
		t.Fatalf("expected error for missing field id")
	}
	if _, err := New(Config{ID: "Type"}); err == nil {
		t.Fatalf("expected error for missing schema")
	}
}

func TestOptions_ClearSentinelIsAlwaysFirst(t *testing.T) {
	w, err := New(Config{
		ID:     "Type",
		Title:  "Type",
		Schema: map[string]any{"enum": []any{"Model", "Downloadable Tool"}},
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	want := []Option{
		{Value: "", Label: ClearLabel},
		{Value: "Model", Label: "Model"},
		{Value: "Downloadable Tool", Label: "Downloadable Tool"},
	}
	if diff := cmp.Diff(want, w.Options()); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptions_NoEnumYieldsOnlySentinel(t *testing.T) {
	w, err := New(Config{ID: "Name", Schema: map[string]any{"type": "string"}})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	got := w.Options()
	if len(got) != 1 || got[0].Label != ClearLabel {
		t.Fatalf("expected only the clear sentinel, got %#v", got)
	}
}

func TestOptions_ResolvesItemsDefinitionRef(t *testing.T) {
	w, err := New(Config{
		ID: "Roles",
		Schema: map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/definitions/RoleEnum"},
		},
		Definitions: map[string]any{
			"RoleEnum": map[string]any{"enum": []any{"DEVELOPER", "PUBLISHER"}},
		},
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	got := w.Options()
	if len(got) != 3 || got[1].Value != "DEVELOPER" || got[2].Value != "PUBLISHER" {
		t.Fatalf("unexpected options: %#v", got)
	}
}

func TestOptions_CachedEnumTakesPrecedence(t *testing.T) {
	enums := formmodel.NewEnumCache()
	enums.Set("Descriptive Keywords", "ToolKeywords", []string{"EARTH SCIENCE SERVICES"})

	w, err := New(Config{
		ID:       "ToolKeywords",
		Section:  "Descriptive Keywords",
		Property: "ToolKeywords",
		Schema:   map[string]any{"enum": []any{"stale"}},
		Enums:    enums,
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	got := w.Options()
	if len(got) != 2 || got[1].Value != "EARTH SCIENCE SERVICES" {
		t.Fatalf("expected cached enum to win, got %#v", got)
	}
}

func TestResolve_RecordsFirstSegments(t *testing.T) {
	enums := formmodel.NewEnumCache()
	svc := &fakeService{paths: []keywords.Path{
		{"EARTH SCIENCE SERVICES", "DATA ANALYSIS AND VISUALIZATION"},
		{"EARTH SCIENCE SERVICES", "DATA MANAGEMENT/DATA HANDLING"},
		{"EARTH SCIENCE", "ATMOSPHERE"},
	}}

	w, err := New(Config{
		ID:          "ToolKeywords",
		Section:     "Descriptive Keywords",
		Property:    "ToolKeywords",
		Schema:      map[string]any{"type": "array"},
		Vocabulary:  "science_keywords",
		ControlName: "category",
		Service:     svc,
		Enums:       enums,
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	w.Resolve(context.Background())

	if len(svc.calls) != 1 || svc.calls[0] != "science_keywords" {
		t.Fatalf("unexpected service calls: %#v", svc.calls)
	}
	if w.Loading() {
		t.Fatalf("expected loading cleared after resolve")
	}
	values, ok := enums.Get("Descriptive Keywords", "ToolKeywords")
	if !ok {
		t.Fatalf("expected cache entry after resolve")
	}
	want := []string{"EARTH SCIENCE SERVICES", "EARTH SCIENCE"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("unexpected cached values (-want +got):\n%s", diff)
	}
}

func TestResolve_FailurePublishesWarning(t *testing.T) {
	recorder := &statusRecorder{}
	svc := &fakeService{err: errors.New("boom")}

	w, err := New(Config{
		ID:          "ToolKeywords",
		Schema:      map[string]any{"type": "array"},
		Vocabulary:  "science_keywords",
		ControlName: "category",
		Service:     svc,
		Status:      recorder,
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	w.Resolve(context.Background())

	if w.Loading() {
		t.Fatalf("expected loading cleared after failed resolve")
	}
	if len(recorder.published) != 1 {
		t.Fatalf("expected one status, got %#v", recorder.published)
	}
	got := recorder.published[0]
	if got.Severity != status.SeverityWarning {
		t.Fatalf("expected warning severity, got %v", got.Severity)
	}
	if got.Message != "Error retrieving science_keywords keywords" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestResolve_NoopWithoutControlledBinding(t *testing.T) {
	svc := &fakeService{}
	w, err := New(Config{
		ID:      "Name",
		Schema:  map[string]any{"type": "string"},
		Service: svc,
	})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	w.Resolve(context.Background())
	if len(svc.calls) != 0 {
		t.Fatalf("expected no fetch without vocabulary binding, got %#v", svc.calls)
	}
}

func TestPlaceholder_DefaultsToSelectTitle(t *testing.T) {
	w, err := New(Config{ID: "Type", Title: "Type", Schema: map[string]any{}})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if got := w.Placeholder(); got != "Select Type" {
		t.Fatalf("unexpected placeholder %q", got)
	}

	w2, err := New(Config{ID: "Type", Schema: map[string]any{}, Placeholder: "Pick one"})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if got := w2.Placeholder(); got != "Pick one" {
		t.Fatalf("unexpected placeholder %q", got)
	}
}

func TestScrollIntent_FiresOncePerClaim(t *testing.T) {
	w, err := New(Config{ID: "instrument_2_name", Schema: map[string]any{}})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}

	if !w.ScrollIntent("instrument_2") {
		t.Fatalf("expected scroll intent on first claim")
	}
	if w.ScrollIntent("instrument_2") {
		t.Fatalf("expected no repeat scroll intent while claim holds")
	}

	// Losing and regaining the claim re-arms the scroll.
	if w.ScrollIntent("other_1") {
		t.Fatalf("expected no scroll intent without a claim")
	}
	if !w.ScrollIntent("instrument_2") {
		t.Fatalf("expected scroll intent after claim regained")
	}
}
