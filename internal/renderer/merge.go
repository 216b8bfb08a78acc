package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeStream parses a multi-document YAML stream, preserving document
// order. Each returned node is a document node.
func decodeStream(stream string) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(stream))

	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
}

// encodeStream re-serializes documents in order, with --- separators.
func encodeStream(docs []*yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// mergeOverride applies an inline override document to a built stream.
//
// The override must be a single mapping; an empty or non-mapping override
// leaves the stream untouched. Only the first document whose
// (kind, metadata.name) matches the override's receives the merge, even
// when several documents share that identity (namespace is not part of
// identity). The merge is shallow: each top-level override key replaces
// the target's whole value for that key; target keys absent from the
// override survive.
func mergeOverride(stream, overrideBody string) (string, error) {
	var override yaml.Node
	if err := yaml.Unmarshal([]byte(overrideBody), &override); err != nil {
		return "", fmt.Errorf("invalid override: %w", err)
	}
	ovMap := mappingOf(&override)
	if ovMap == nil {
		return stream, nil
	}

	docs, err := decodeStream(stream)
	if err != nil {
		return "", fmt.Errorf("invalid manifest stream: %w", err)
	}

	ovKind, ovName := identity(ovMap)
	for _, doc := range docs {
		target := mappingOf(doc)
		if target == nil {
			continue
		}
		kind, name := identity(target)
		if kind == ovKind && name == ovName {
			shallowMerge(target, ovMap)
			break
		}
	}

	return encodeStream(docs)
}

// shallowMerge replaces target's top-level entries with override's,
// appending override keys the target lacks. Values are swapped whole;
// nested structures are not combined.
func shallowMerge(target, override *yaml.Node) {
	for i := 0; i+1 < len(override.Content); i += 2 {
		key := override.Content[i]
		value := override.Content[i+1]

		if existing := indexOfKey(target, key.Value); existing >= 0 {
			target.Content[existing+1] = value
		} else {
			target.Content = append(target.Content, key, value)
		}
	}
}

// identity extracts the (kind, metadata.name) pair from a mapping node.
func identity(mapping *yaml.Node) (kind, name string) {
	kind = scalarValue(childByKey(mapping, "kind"))
	if meta := childByKey(mapping, "metadata"); meta != nil && meta.Kind == yaml.MappingNode {
		name = scalarValue(childByKey(meta, "name"))
	}
	return kind, name
}

// mappingOf unwraps a document node down to its mapping content.
// Returns nil for empty documents and non-mapping documents.
func mappingOf(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// childByKey returns the value node for key in a mapping, or nil.
func childByKey(mapping *yaml.Node, key string) *yaml.Node {
	if i := indexOfKey(mapping, key); i >= 0 {
		return mapping.Content[i+1]
	}
	return nil
}

// indexOfKey returns the index of key's key-node in mapping.Content, or -1.
func indexOfKey(mapping *yaml.Node, key string) int {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return -1
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return i
		}
	}
	return -1
}

func scalarValue(node *yaml.Node) string {
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}
