package ingest

import (
	"reflect"
	"testing"
)

type tripleDoc struct {
	TripleList [][]string `json:"triple_list"`
}

func TestDecodeLooseStrictJSON(t *testing.T) {
	var out tripleDoc
	raw := `{"triple_list": [["job", "requires", "skills"]]}`
	if err := decodeLoose(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"job", "requires", "skills"}}
	if !reflect.DeepEqual(out.TripleList, want) {
		t.Fatalf("got %v, want %v", out.TripleList, want)
	}
}

func TestDecodeLoosePythonLiteral(t *testing.T) {
	var out tripleDoc
	raw := `{'triple_list': [('backend_engineer', 'requires', 'sql'), ('company', 'offers', 'position')]}`
	if err := decodeLoose(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		{"backend_engineer", "requires", "sql"},
		{"company", "offers", "position"},
	}
	if !reflect.DeepEqual(out.TripleList, want) {
		t.Fatalf("got %v, want %v", out.TripleList, want)
	}
}

func TestDecodeLooseEscapedQuote(t *testing.T) {
	var out map[string]string
	raw := `{'note': 'it\'s fine'}`
	if err := decodeLoose(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["note"] != "it's fine" {
		t.Fatalf("got %q", out["note"])
	}
}

func TestDecodeLoosePythonConstants(t *testing.T) {
	var out map[string]any
	raw := `{'a': None, 'b': True, 'c': False}`
	if err := decodeLoose(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["a"] != nil || out["b"] != true || out["c"] != false {
		t.Fatalf("got %v", out)
	}
}

func TestDecodeLooseFencedResponse(t *testing.T) {
	var out tripleDoc
	raw := "```json\n{\"triple_list\": [[\"a\", \"b\", \"c\"]]}\n```"
	if err := decodeLoose(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.TripleList) != 1 {
		t.Fatalf("got %v", out.TripleList)
	}
}

func TestDecodeLooseRejectsGarbage(t *testing.T) {
	var out tripleDoc
	for _, raw := range []string{"", "sorry, no triples found", "{'triple_list': [('a',"} {
		if err := decodeLoose(raw, &out); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
