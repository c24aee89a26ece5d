package metadata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"podpost/internal/fileutil"
)

// Store wraps the record map and enforces the write-through invariant:
// every Set re-serializes the whole record to its YAML file.
type Store struct {
	path   string
	seed   Seed
	fields map[string]Value
}

// New builds a fresh record at path, seeded entirely from the default-value
// table. Nothing is written until Save or the first Set.
func New(path string, seed Seed) *Store {
	return &Store{path: path, seed: seed, fields: defaults(seed)}
}

// Load reads a record from its YAML file. Fields missing from the file are
// filled from the default table; unknown keys are an error so hand-edit
// typos surface immediately.
func Load(path string, seed Seed) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	store := New(path, seed)
	if len(doc.Content) == 0 {
		return store, nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse metadata: expected a mapping at the top level")
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		name := keyNode.Value
		if !IsField(name) {
			return nil, fmt.Errorf("metadata: unknown field %q (line %d)", name, keyNode.Line)
		}
		value, err := decodeValue(valueNode)
		if err != nil {
			return nil, fmt.Errorf("metadata: field %q: %w", name, err)
		}
		store.fields[name] = value
	}
	return store, nil
}

// Path returns the record's file location.
func (s *Store) Path() string { return s.path }

// Get returns the value of a vocabulary field. Unknown names return the zero
// Value; mutation is guarded by Set instead.
func (s *Store) Get(field string) Value {
	return s.fields[field]
}

// Set updates one field and immediately re-persists the whole record.
func (s *Store) Set(field string, value Value) error {
	if !IsField(field) {
		return fmt.Errorf("metadata: unknown field %q", field)
	}
	s.fields[field] = value
	return s.Save()
}

// Save serializes the record to its YAML file atomically, fields in
// vocabulary order.
func (s *Store) Save() error {
	data, err := s.marshal()
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}

func (s *Store) marshal() ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, spec := range fieldOrder {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: spec.name}
		valueNode := encodeValue(s.fields[spec.name])
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return data, nil
}

func encodeValue(v Value) *yaml.Node {
	switch v.Kind() {
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v.list {
			node.Content = append(node.Content, scalarNode(item))
		}
		return node
	case KindPairs:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, pair := range v.pairs {
			pairNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			pairNode.Content = append(pairNode.Content, scalarNode(pair.URL), scalarNode(pair.Name))
			node.Content = append(node.Content, pairNode)
		}
		return node
	default:
		return scalarNode(v.str)
	}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// decodeValue maps YAML shapes onto value kinds: strings become scalars,
// sequences of strings become lists, sequences of two-element sequences
// become pairs. The shape in the file wins over the declared field kind so a
// hand-edited single-element list survives until the validation gate
// coerces it.
func decodeValue(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return List(), nil
		}
		if node.Content[0].Kind == yaml.SequenceNode {
			pairs := make([]Link, 0, len(node.Content))
			for _, pairNode := range node.Content {
				if pairNode.Kind != yaml.SequenceNode || len(pairNode.Content) != 2 {
					return Value{}, fmt.Errorf("expected [url, name] pair (line %d)", pairNode.Line)
				}
				pairs = append(pairs, Link{
					URL:  pairNode.Content[0].Value,
					Name: pairNode.Content[1].Value,
				})
			}
			return Pairs(pairs...), nil
		}
		items := make([]string, 0, len(node.Content))
		for _, itemNode := range node.Content {
			if itemNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("expected a string (line %d)", itemNode.Line)
			}
			items = append(items, itemNode.Value)
		}
		return List(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported YAML node (line %d)", node.Line)
	}
}
