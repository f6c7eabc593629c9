package formatter

import (
	"strings"
	"unicode"

	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
)

var (
	xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	xmlAttrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// XML renders v, which must be an object in the compact mapping produced
// by parser.ParseXML, as an indented XML document.
func (f *Formatter) XML(v models.Value) (string, error) {
	if !v.Defined() {
		return "", nil
	}
	if v.Kind() != models.KindObject {
		return "", errors.NewConversionError(
			"XML output needs an object at the top level, got "+v.Kind().String(),
			errors.ErrUnsupported,
		)
	}

	w := &xmlWriter{indent: f.indent}
	if err := w.content(v, 0); err != nil {
		return "", errors.NewConversionError(err.Error(), pkgerrors.Wrap(err, "xml encode"))
	}
	return strings.Join(w.lines, "\n"), nil
}

type xmlWriter struct {
	indent int
	lines  []string
}

func (w *xmlWriter) emit(depth int, s string) {
	w.lines = append(w.lines, strings.Repeat(" ", depth*w.indent)+s)
}

// content writes the members of an element body, one node per line.
func (w *xmlWriter) content(v models.Value, depth int) error {
	for _, m := range v.Members() {
		if m.Key == parser.XMLAttributesKey || !m.Value.Defined() {
			continue
		}
		if err := w.member(m.Key, m.Value, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *xmlWriter) member(key string, v models.Value, depth int) error {
	switch key {
	case parser.XMLDeclarationKey:
		w.emit(depth, "<?xml"+attributes(v.Get(parser.XMLAttributesKey))+"?>")
		return nil
	case parser.XMLInstructionKey:
		for _, m := range v.Members() {
			inst := m.Value.String()
			if inst == "" {
				w.emit(depth, "<?"+m.Key+"?>")
				continue
			}
			w.emit(depth, "<?"+m.Key+" "+inst+"?>")
		}
		return nil
	case parser.XMLCommentKey:
		for _, c := range flatten(v) {
			w.emit(depth, "<!--"+c.String()+"-->")
		}
		return nil
	case parser.XMLDoctypeKey:
		w.emit(depth, "<!DOCTYPE "+v.String()+">")
		return nil
	case parser.XMLTextKey:
		for _, t := range flatten(v) {
			w.emit(depth, xmlTextEscaper.Replace(t.String()))
		}
		return nil
	case parser.XMLCDataKey:
		for _, t := range flatten(v) {
			w.emit(depth, "<![CDATA["+t.String()+"]]>")
		}
		return nil
	}

	if !validXMLName(key) {
		return pkgerrors.Errorf("'%s' is not a valid element name", key)
	}
	for _, item := range flatten(v) {
		if err := w.element(key, item, depth); err != nil {
			return err
		}
	}
	return nil
}

func (w *xmlWriter) element(name string, v models.Value, depth int) error {
	switch v.Kind() {
	case models.KindUndefined, models.KindNull:
		w.emit(depth, "<"+name+"/>")
		return nil
	case models.KindObject:
	default:
		w.emit(depth, "<"+name+">"+xmlTextEscaper.Replace(v.String())+"</"+name+">")
		return nil
	}

	open := "<" + name + attributes(v.Get(parser.XMLAttributesKey))
	body := bodyMembers(v)
	if len(body) == 0 {
		w.emit(depth, open+"/>")
		return nil
	}
	if text, ok := inlineText(body); ok {
		w.emit(depth, open+">"+text+"</"+name+">")
		return nil
	}

	w.emit(depth, open+">")
	if err := w.content(v, depth+1); err != nil {
		return err
	}
	w.emit(depth, "</"+name+">")
	return nil
}

func bodyMembers(v models.Value) []models.Member {
	var out []models.Member
	for _, m := range v.Members() {
		if m.Key != parser.XMLAttributesKey && m.Value.Defined() {
			out = append(out, m)
		}
	}
	return out
}

// inlineText reports whether an element body is a single text or CDATA
// node that fits on the opening tag's line.
func inlineText(body []models.Member) (string, bool) {
	if len(body) != 1 || body[0].Value.Kind() == models.KindArray {
		return "", false
	}
	switch body[0].Key {
	case parser.XMLTextKey:
		return xmlTextEscaper.Replace(body[0].Value.String()), true
	case parser.XMLCDataKey:
		return "<![CDATA[" + body[0].Value.String() + "]]>", true
	}
	return "", false
}

func attributes(v models.Value) string {
	if v.Kind() != models.KindObject {
		return ""
	}
	var b strings.Builder
	for _, m := range v.Members() {
		if !m.Value.Defined() {
			continue
		}
		b.WriteString(" " + m.Key + `="` + xmlAttrEscaper.Replace(m.Value.String()) + `"`)
	}
	return b.String()
}

// flatten expands nested arrays into a single list of repeated nodes.
func flatten(v models.Value) []models.Value {
	if v.Kind() != models.KindArray {
		return []models.Value{v}
	}
	var out []models.Value
	for _, item := range v.Items() {
		out = append(out, flatten(item)...)
	}
	return out
}

func validXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == ':' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
