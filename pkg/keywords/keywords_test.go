package keywords

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten_RootToLeafPaths(t *testing.T) {
	tree := []Node{
		{
			Value: "EARTH SCIENCE SERVICES",
			Children: []Node{
				{Value: "DATA ANALYSIS AND VISUALIZATION", Children: []Node{
					{Value: "CALIBRATION/VALIDATION"},
					{Value: "GEOGRAPHIC INFORMATION SYSTEMS"},
				}},
				{Value: "DATA MANAGEMENT/DATA HANDLING"},
			},
		},
		{Value: "EARTH SCIENCE"},
	}

	want := []Path{
		{"EARTH SCIENCE SERVICES", "DATA ANALYSIS AND VISUALIZATION", "CALIBRATION/VALIDATION"},
		{"EARTH SCIENCE SERVICES", "DATA ANALYSIS AND VISUALIZATION", "GEOGRAPHIC INFORMATION SYSTEMS"},
		{"EARTH SCIENCE SERVICES", "DATA MANAGEMENT/DATA HANDLING"},
		{"EARTH SCIENCE"},
	}
	if diff := cmp.Diff(want, Flatten(tree)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestFlatten_SkipsEmptyValuedNodes(t *testing.T) {
	tree := []Node{
		{Value: "", Children: []Node{{Value: "orphan"}}},
		{Value: "kept"},
	}
	want := []Path{{"kept"}}
	if diff := cmp.Diff(want, Flatten(tree)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestFirstSegments_DeduplicatesInOrder(t *testing.T) {
	paths := []Path{
		{"EARTH SCIENCE SERVICES", "DATA ANALYSIS AND VISUALIZATION"},
		{"EARTH SCIENCE SERVICES", "DATA MANAGEMENT/DATA HANDLING"},
		{"EARTH SCIENCE", "ATMOSPHERE"},
		{},
	}
	want := []string{"EARTH SCIENCE SERVICES", "EARTH SCIENCE"}
	if diff := cmp.Diff(want, FirstSegments(paths)); diff != "" {
		t.Fatalf("unexpected segments (-want +got):\n%s", diff)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient(); err == nil {
		t.Fatalf("expected error for missing base url")
	}
}

func TestClientFetchKeywords_FlattensResponse(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"value":"root","children":[{"value":"leaf"}]}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(WithBaseURL(srv.URL + "/api/keywords"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	paths, err := client.FetchKeywords(context.Background(), "science_keywords")
	if err != nil {
		t.Fatalf("fetch keywords: %v", err)
	}
	if gotPath != "/api/keywords/science_keywords" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	want := []Path{{"root", "leaf"}}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestClientFetchKeywords_SurfacesErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.FetchKeywords(context.Background(), "platforms")
	if err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "Error code: 404") {
		t.Fatalf("expected error code in message, got %q", err.Error())
	}
}

func TestClientFetchKeywords_RequiresVocabulary(t *testing.T) {
	client, err := NewClient(WithBaseURL("http://localhost:9"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.FetchKeywords(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank vocabulary")
	}
}
