package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AGE returns vertices and edges as agtype text: a JSON document tagged with
// a ::vertex or ::edge suffix. The properties are ours, the envelope is not,
// so both are parsed defensively.

type agtypeProperties struct {
	Properties struct {
		ID     string `json:"id"`
		Entity string `json:"entity"`
		Label  string `json:"label"`
	} `json:"properties"`
}

func parseAgtype(raw, suffix string) (agtypeProperties, error) {
	var out agtypeProperties
	payload := strings.TrimSpace(raw)
	payload = strings.TrimSuffix(payload, suffix)
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return out, fmt.Errorf("parse agtype %s: %w", suffix, err)
	}
	return out, nil
}

// vertexEntity extracts the entity name from one agtype vertex value.
func vertexEntity(raw string) (string, error) {
	v, err := parseAgtype(raw, "::vertex")
	if err != nil {
		return "", err
	}
	return v.Properties.Entity, nil
}

// edgeLabel extracts the relation label from one agtype edge value.
func edgeLabel(raw string) (string, error) {
	e, err := parseAgtype(raw, "::edge")
	if err != nil {
		return "", err
	}
	return e.Properties.Label, nil
}
