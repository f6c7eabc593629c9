package parser

import (
	stdjson "encoding/json"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

const msgUnexpectedEnd = "unexpected end of JSON input"

// ParseJSON decodes a single JSON document, keeping object member order.
//
// Text the grammar scanner rejects is run through a strict unmarshal so the
// learner sees the decoder's own message; the token stream used to build
// the ordered tree does not check separators. Numbers beyond float64 range,
// such as 1e400, decode to ±Inf.
func ParseJSON(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return models.Value{}, errors.NewSyntaxError(msgUnexpectedEnd, errors.ErrEmptyInput)
	}

	// the goccy validator parses numbers and rejects 1e400
	if !stdjson.Valid([]byte(text)) {
		var doc any
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			return models.Value{}, errors.NewSyntaxError(jsonErrorMessage(err), errors.ErrInvalidSyntax)
		}
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	r := &jsonReader{dec: dec}

	root, err := r.value()
	if err != nil {
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}
	if tok, err := dec.Token(); err == nil {
		return models.Value{}, errors.NewSyntaxError(
			pkgerrors.Errorf("unexpected token %v after top-level value", tok).Error(),
			errors.ErrMultipleValues,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewSyntaxError(err.Error(), errors.ErrInvalidSyntax)
	}
	return root, nil
}

func jsonErrorMessage(err error) string {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return msgUnexpectedEnd
	}
	return err.Error()
}

type jsonReader struct {
	dec *json.Decoder
}

func (r *jsonReader) token() (json.Token, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, pkgerrors.New(msgUnexpectedEnd)
		}
		return nil, err
	}
	return tok, nil
}

func (r *jsonReader) value() (models.Value, error) {
	tok, err := r.token()
	if err != nil {
		return models.Value{}, err
	}
	return r.fromToken(tok)
}

func (r *jsonReader) fromToken(tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return r.object()
		case '[':
			return r.array()
		}
		return models.Value{}, pkgerrors.Errorf("unexpected token '%s'", t)
	case string:
		return models.String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !stderrors.Is(err, strconv.ErrRange) {
			return models.Value{}, pkgerrors.Wrapf(err, "invalid number %s", t)
		}
		return models.Number(f), nil
	case float64:
		return models.Number(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null(), nil
	}
	return models.Value{}, pkgerrors.Errorf("unexpected token %v", tok)
}

func (r *jsonReader) object() (models.Value, error) {
	var members []models.Member
	for {
		tok, err := r.token()
		if err != nil {
			return models.Value{}, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return models.Object(members...), nil
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, pkgerrors.Errorf("expected object key, got %v", tok)
		}
		val, err := r.value()
		if err != nil {
			return models.Value{}, pkgerrors.Wrapf(err, "in member %q", key)
		}
		members = append(members, models.Pair(key, val))
	}
}

func (r *jsonReader) array() (models.Value, error) {
	var items []models.Value
	for {
		tok, err := r.token()
		if err != nil {
			return models.Value{}, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return models.Array(items...), nil
		}
		item, err := r.fromToken(tok)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
}
