package draft

import "testing"

func TestNew_StartsUnassigned(t *testing.T) {
	d := New()
	if d.APIID != UnassignedID || d.APIUserID != UnassignedID || d.RevisionID != UnassignedID {
		t.Fatalf("expected unassigned identifiers, got %#v", d)
	}
	if d.JSON == nil || d.Errors == nil {
		t.Fatalf("expected non-nil document and errors maps")
	}
	if d.Key == "" {
		t.Fatalf("expected a freshness key")
	}
	if d.Persisted() {
		t.Fatalf("new draft must not report persisted")
	}
}

func TestReplace_SwapsStateAndRefreshesKey(t *testing.T) {
	d := New()
	before := d.Key

	next := New()
	next.APIID = 12
	next.RevisionID = 3
	next.ConceptID = "T1200000-EXAMPLE"
	next.JSON = map[string]any{"Name": "fetched"}
	next.Errors = map[string][]string{"LongName": {"is required"}}

	d.Replace(next)

	if d.APIID != 12 || d.RevisionID != 3 || d.ConceptID != "T1200000-EXAMPLE" {
		t.Fatalf("identity not replaced: %#v", d)
	}
	if d.JSON["Name"] != "fetched" {
		t.Fatalf("document not replaced: %#v", d.JSON)
	}
	if len(d.Errors["LongName"]) != 1 {
		t.Fatalf("errors not replaced: %#v", d.Errors)
	}
	if d.Key == before {
		t.Fatalf("expected key to change on replacement")
	}
	if !d.Persisted() {
		t.Fatalf("expected draft to report persisted after replacement")
	}
}

func TestReplace_GuardsNilMaps(t *testing.T) {
	d := New()
	d.Replace(&Draft{APIID: 5})
	if d.JSON == nil || d.Errors == nil {
		t.Fatalf("expected nil maps to be replaced with empty ones")
	}
}

func TestNormalize_ProducesPlainJSONTypes(t *testing.T) {
	type organization struct {
		Roles []string `json:"Roles"`
	}
	d := New()
	d.JSON["Organizations"] = []organization{{Roles: []string{"DEVELOPER"}}}
	d.JSON["Revision"] = 2

	if err := d.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}

	orgs, ok := d.JSON["Organizations"].([]any)
	if !ok || len(orgs) != 1 {
		t.Fatalf("expected struct slice normalized to []any, got %#v", d.JSON["Organizations"])
	}
	if _, ok := orgs[0].(map[string]any); !ok {
		t.Fatalf("expected element normalized to map, got %T", orgs[0])
	}
	if d.JSON["Revision"] != float64(2) {
		t.Fatalf("expected int normalized to float64, got %#v", d.JSON["Revision"])
	}
}
