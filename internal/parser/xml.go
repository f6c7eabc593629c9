package parser

import (
	"encoding/xml"
	stderrors "errors"
	"io"
	"regexp"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

// Reserved keys of the compact XML object mapping.
const (
	XMLDeclarationKey = "_declaration"
	XMLInstructionKey = "_instruction"
	XMLAttributesKey  = "_attributes"
	XMLTextKey        = "_text"
	XMLCDataKey       = "_cdata"
	XMLCommentKey     = "_comment"
	XMLDoctypeKey     = "_doctype"
)

var pseudoAttr = regexp.MustCompile(`([A-Za-z_][\w.:-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ParseXML decodes an XML document into the compact object mapping: every
// element becomes a key of its parent, repeated siblings collapse into an
// array, attributes live under "_attributes" and character data under
// "_text". Whitespace-only text between elements is dropped.
func ParseXML(text string) (models.Value, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	root := newXMLElement()
	stack := []*xmlElement{root}
	var names []string
	var pending strings.Builder

	flush := func() error {
		if pending.Len() == 0 {
			return nil
		}
		s := pending.String()
		pending.Reset()
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if len(names) == 0 {
			return pkgerrors.New("text data outside of root node")
		}
		stack[len(stack)-1].add(XMLTextKey, models.String(s))
		return nil
	}

	for {
		tok, err := dec.RawToken()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
		}

		if cd, ok := tok.(xml.CharData); ok {
			pending.Write(cd)
			continue
		}
		if err := flush(); err != nil {
			return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
		}

		parent := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			el := newXMLElement()
			for _, a := range t.Attr {
				el.attrs = append(el.attrs, models.Pair(xmlName(a.Name), models.String(a.Value)))
			}
			stack = append(stack, el)
			names = append(names, xmlName(t.Name))
		case xml.EndElement:
			name := xmlName(t.Name)
			if len(names) == 0 || names[len(names)-1] != name {
				return models.Value{}, errors.NewSyntaxError(
					pkgerrors.Errorf("unexpected close tag </%s>", name).Error(),
					errors.ErrInvalidSyntax,
				)
			}
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			names = names[:len(names)-1]
			stack[len(stack)-1].add(name, el.value())
		case xml.ProcInst:
			if t.Target == "xml" {
				parent.add(XMLDeclarationKey, models.Object(
					models.Pair(XMLAttributesKey, pseudoAttributes(string(t.Inst))),
				))
				continue
			}
			parent.add(XMLInstructionKey, models.Object(
				models.Pair(t.Target, models.String(strings.TrimSpace(string(t.Inst)))),
			))
		case xml.Comment:
			parent.add(XMLCommentKey, models.String(string(t)))
		case xml.Directive:
			d := strings.TrimSpace(string(t))
			if rest, ok := cutPrefixFold(d, "DOCTYPE"); ok {
				parent.add(XMLDoctypeKey, models.String(strings.TrimSpace(rest)))
			}
		}
	}

	if err := flush(); err != nil {
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}
	if len(names) > 0 {
		return models.Value{}, errors.NewSyntaxError(
			pkgerrors.Errorf("unclosed tag <%s>", names[len(names)-1]).Error(),
			errors.ErrInvalidSyntax,
		)
	}
	return root.value(), nil
}

type xmlElement struct {
	attrs []models.Member
	keys  []string
	vals  map[string][]models.Value
}

func newXMLElement() *xmlElement {
	return &xmlElement{vals: make(map[string][]models.Value)}
}

func (e *xmlElement) add(key string, v models.Value) {
	if _, ok := e.vals[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.vals[key] = append(e.vals[key], v)
}

func (e *xmlElement) value() models.Value {
	members := make([]models.Member, 0, len(e.keys)+1)
	if len(e.attrs) > 0 {
		members = append(members, models.Pair(XMLAttributesKey, models.Object(e.attrs...)))
	}
	for _, k := range e.keys {
		vs := e.vals[k]
		if len(vs) == 1 {
			members = append(members, models.Pair(k, vs[0]))
			continue
		}
		members = append(members, models.Pair(k, models.Array(vs...)))
	}
	return models.Object(members...)
}

func xmlName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func pseudoAttributes(inst string) models.Value {
	var members []models.Member
	for _, m := range pseudoAttr.FindAllStringSubmatch(inst, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		members = append(members, models.Pair(m[1], models.String(val)))
	}
	return models.Object(members...)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
