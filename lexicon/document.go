package lexicon

import (
	"encoding/json"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Load parses a full lexicon document envelope
// ({lexicon, id, defs: {main, ...}}) and returns the main schema as a
// Document.
func Load(data []byte) (Document, error) {
	var raw struct {
		Lexicon int                        `json:"lexicon"`
		ID      string                     `json:"id"`
		Defs    map[string]json.RawMessage `json:"defs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "lexicon: invalid JSON envelope", err)
	}
	mainRaw, ok := raw.Defs["main"]
	if !ok {
		return Document{}, atperr.New(atperr.KindStruct, atperr.CodeMissingType, "lexicon: defs.main is required")
	}
	schema, typ, err := decodeSchema(mainRaw)
	if err != nil {
		return Document{}, err
	}
	return Document{NSID: raw.ID, Version: raw.Lexicon, Type: typ, Main: schema}, nil
}

func decodeSchema(data []byte) (*Schema, string, error) {
	var node struct {
		Type         string             `json:"type"`
		Const        any                `json:"const"`
		Minimum      *float64           `json:"minimum"`
		Maximum      *float64           `json:"maximum"`
		Enum         []any              `json:"enum"`
		MinLength    *int               `json:"minLength"`
		MaxLength    *int               `json:"maxLength"`
		MaxGraphemes *int               `json:"maxGraphemes"`
		Required     []string           `json:"required"`
		Properties   map[string]json.RawMessage `json:"properties"`
		Items        json.RawMessage    `json:"items"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, "", atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "lexicon: invalid schema node", err)
	}
	if node.Type == "" && node.Const == nil {
		return nil, "", atperr.New(atperr.KindStruct, atperr.CodeMissingType, "lexicon: schema node has neither type nor const")
	}

	s := &Schema{
		Type:         node.Type,
		Const:        node.Const,
		Minimum:      node.Minimum,
		Maximum:      node.Maximum,
		Enum:         node.Enum,
		MinLength:    node.MinLength,
		MaxLength:    node.MaxLength,
		MaxGraphemes: node.MaxGraphemes,
		Required:     node.Required,
	}
	if s.Type == "" {
		s.Type = "const"
	}

	if len(node.Properties) > 0 {
		s.Properties = make(map[string]*Schema, len(node.Properties))
		for name, raw := range node.Properties {
			sub, _, err := decodeSchema(raw)
			if err != nil {
				return nil, "", err
			}
			s.Properties[name] = sub
		}
	}
	if len(node.Items) > 0 {
		sub, _, err := decodeSchema(node.Items)
		if err != nil {
			return nil, "", err
		}
		s.Items = sub
	}

	return s, s.Type, nil
}
