package catalog

import "fmt"

// Triple is one extracted (subject, predicate, object) fact. It is never
// persisted as-is: the store materializes it into two vertices and one edge.
// A blank predicate is legal here; the edge write substitutes the default
// relation label.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// NewTriple builds a Triple from one raw token row of a model response.
func NewTriple(row []string) (Triple, error) {
	if len(row) != 3 {
		return Triple{}, fmt.Errorf("triple: expected 3 tokens, got %d", len(row))
	}
	t := Triple{Subject: row[0], Predicate: row[1], Object: row[2]}
	if err := t.Validate(); err != nil {
		return Triple{}, err
	}
	return t, nil
}

func (t Triple) Validate() error {
	if t.Subject == "" {
		return fmt.Errorf("triple: missing subject")
	}
	if t.Object == "" {
		return fmt.Errorf("triple: missing object")
	}
	return nil
}

// Edge is a directed labeled relation between two named entities, as read
// back from the graph.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}
