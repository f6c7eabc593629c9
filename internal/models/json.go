package models

import (
	"bytes"
	"math"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes v as compact JSON with object members in order.
// Members holding Undefined are left out; Undefined array items and
// non-finite numbers encode as null. HTML characters are not escaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindUndefined, KindNull:
		buf.WriteString("null")
	case KindBoolean:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(FormatNumber(v.number))
	case KindString:
		return appendJSONString(buf, v.text)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		written := 0
		for _, m := range v.members {
			if !m.Value.Defined() {
				continue
			}
			if written > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSONString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.appendJSON(buf); err != nil {
				return err
			}
			written++
		}
		buf.WriteByte('}')
	}
	return nil
}

func appendJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	if err := enc.EncodeWithOption(s, json.DisableHTMLEscape(), json.DisableNormalizeUTF8()); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
