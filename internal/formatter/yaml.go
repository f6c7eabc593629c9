package formatter

import (
	"bytes"
	"math"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// YAML renders v as a block style YAML document. Strings that would read
// back as another type are quoted; empty collections use flow style.
func (f *Formatter) YAML(v models.Value) (string, error) {
	if !v.Defined() {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(f.indent)
	if err := enc.Encode(YAMLNode(v)); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", pkgerrors.Wrap(err, "yaml encode"))
	}
	if err := enc.Close(); err != nil {
		return "", errors.NewConversionError("failed to encode YAML", pkgerrors.Wrap(err, "yaml close"))
	}
	return buf.String(), nil
}

// YAMLNode converts v into a yaml.v3 node tree.
func YAMLNode(v models.Value) *yaml.Node {
	switch v.Kind() {
	case models.KindUndefined, models.KindNull:
		return yamlPlain("null")
	case models.KindBoolean:
		val := "false"
		if v.Boolean() {
			val = "true"
		}
		return yamlPlain(val)
	case models.KindNumber:
		return yamlPlain(yamlNumber(v.Float()))
	case models.KindString:
		return yamlString(v.Text())
	case models.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, YAMLNode(item))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case models.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			if !m.Value.Defined() {
				continue
			}
			n.Content = append(n.Content, yamlString(m.Key), YAMLNode(m.Value))
		}
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	}
	return yamlPlain("null")
}

// yamlPlain leaves the tag implicit so the scalar resolves on its own.
func yamlPlain(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return ".nan"
	case math.IsInf(n, 1):
		return ".inf"
	case math.IsInf(n, -1):
		return "-.inf"
	}
	return models.FormatNumber(n)
}
