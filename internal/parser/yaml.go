package parser

import (
	"bytes"
	stderrors "errors"
	"io"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// ParseYAML decodes a single YAML document. An empty document decodes to
// the Undefined value; a stream with more than one document is rejected.
func ParseYAML(text string) (models.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, nil
		}
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return models.Value{}, errors.NewSyntaxError(
			"expected a single document in the stream, but found more",
			errors.ErrMultipleValues,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}

	v, err := FromYAMLNode(&doc)
	if err != nil {
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}
	return v, nil
}

// FromYAMLNode converts a yaml.v3 node tree into a Value. Mapping order is
// preserved, aliases are followed and merge keys ("<<") are expanded.
func FromYAMLNode(n *yaml.Node) (models.Value, error) {
	return fromYAML(n, 0)
}

// maxAliasDepth bounds alias expansion so self-referencing documents fail
// instead of recursing forever.
const maxAliasDepth = 64

func fromYAML(n *yaml.Node, depth int) (models.Value, error) {
	if n == nil {
		return models.Value{}, nil
	}
	if depth > maxAliasDepth {
		return models.Value{}, pkgerrors.Errorf("line %d: document is nested too deeply", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return models.Value{}, nil
		}
		return fromYAML(n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return models.Value{}, pkgerrors.Errorf("line %d: unknown alias %q", n.Line, n.Value)
		}
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]models.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromYAML(c, depth+1)
			if err != nil {
				return models.Value{}, err
			}
			items = append(items, item)
		}
		return models.Array(items...), nil
	case yaml.MappingNode:
		return yamlMapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return models.Value{}, pkgerrors.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlMapping(n *yaml.Node, depth int) (models.Value, error) {
	var members []models.Member
	seen := make(map[string]bool)
	// explicit keys only; keys pulled in by a merge may be overridden
	defined := make(map[string]int)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := resolveAlias(n.Content[i]), n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			merged, err := yamlMerge(valNode, depth)
			if err != nil {
				return models.Value{}, err
			}
			for _, m := range merged {
				if !seen[m.Key] {
					seen[m.Key] = true
					members = append(members, m)
				}
			}
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return models.Value{}, pkgerrors.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		if line, ok := defined[keyNode.Value]; ok {
			return models.Value{}, pkgerrors.Errorf(
				"line %d: duplicated mapping key %q, first defined on line %d",
				keyNode.Line, keyNode.Value, line,
			)
		}
		defined[keyNode.Value] = keyNode.Line

		val, err := fromYAML(valNode, depth+1)
		if err != nil {
			return models.Value{}, err
		}
		seen[keyNode.Value] = true
		members = append(members, models.Pair(keyNode.Value, val))
	}
	return models.Object(members...), nil
}

// yamlMerge returns the members contributed by a merge key. Earlier
// sources win over later ones.
func yamlMerge(n *yaml.Node, depth int) ([]models.Member, error) {
	n = resolveAlias(n)
	var sources []*yaml.Node
	switch n.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{n}
	case yaml.SequenceNode:
		for _, c := range n.Content {
			sources = append(sources, resolveAlias(c))
		}
	default:
		return nil, pkgerrors.Errorf("line %d: cannot merge a non-mapping value", n.Line)
	}

	var out []models.Member
	seen := make(map[string]bool)
	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return nil, pkgerrors.Errorf("line %d: cannot merge a non-mapping value", src.Line)
		}
		v, err := yamlMapping(src, depth+1)
		if err != nil {
			return nil, err
		}
		for _, m := range v.Members() {
			if !seen[m.Key] {
				seen[m.Key] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func yamlScalar(n *yaml.Node) (models.Value, error) {
	switch n.ShortTag() {
	case "!!null", "!!bool", "!!int", "!!float":
		var resolved any
		if err := n.Decode(&resolved); err != nil {
			return models.Value{}, pkgerrors.Wrapf(err, "line %d", n.Line)
		}
		v, err := models.FromAny(resolved)
		if err != nil {
			return models.Value{}, pkgerrors.Wrapf(err, "line %d", n.Line)
		}
		return v, nil
	}
	// !!str, !!timestamp, !!binary and custom tags keep their literal text.
	return models.String(n.Value), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
