// Package validator compares a learner's decoded answer against an expected
// template and reports every structural difference.
package validator

import (
	"strconv"

	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
)

// Options configures a validation run.
type Options struct {
	// Arrays enables element-wise comparison of arrays. When false an
	// expected array is compared like a primitive: kind first, then
	// deep equality as a whole.
	Arrays bool
	// Translator renders discrepancy messages. Nil means English.
	Translator i18n.Translator
}

// Validate walks expected and actual together and returns the
// discrepancies in a stable order: for each object, the expected keys in
// template order (including everything nested under them), then the
// extra keys in the order they appear in actual. An Undefined actual
// means the value is absent.
//
// Validate never fails; callers decode both trees before calling it.
func Validate(expected, actual models.Value, path string, opts Options) []models.Discrepancy {
	v := &walker{opts: opts}
	if v.opts.Translator == nil {
		v.opts.Translator = i18n.Default()
	}
	v.walk(expected, actual, path)
	return v.out
}

type walker struct {
	opts Options
	out  []models.Discrepancy
}

func (w *walker) report(path, code string, data map[string]string) {
	if data == nil {
		data = map[string]string{}
	}
	data["path"] = path
	w.out = append(w.out, models.Discrepancy{
		Path:    path,
		Code:    code,
		Message: w.opts.Translator.Message(code, data),
	})
}

func (w *walker) walk(expected, actual models.Value, path string) {
	if !actual.Defined() {
		w.report(path, i18n.CodeMissing, nil)
		return
	}

	switch {
	case expected.Kind() == models.KindObject:
		w.object(expected, actual, path)
	case expected.Kind() == models.KindArray && w.opts.Arrays:
		w.array(expected, actual, path)
	default:
		w.primitive(expected, actual, path)
	}
}

func (w *walker) object(expected, actual models.Value, path string) {
	if actual.Kind() != models.KindObject {
		w.report(path, i18n.CodeNotObject, map[string]string{"actual": actual.Kind().String()})
		return
	}

	for _, m := range expected.Members() {
		w.walk(m.Value, actual.Get(m.Key), KeyPath(path, m.Key))
	}
	for _, m := range actual.Members() {
		if expected.Has(m.Key) {
			continue
		}
		w.report(KeyPath(path, m.Key), i18n.CodeExtraField, map[string]string{
			"key":    m.Key,
			"parent": path,
		})
	}
}

func (w *walker) array(expected, actual models.Value, path string) {
	if actual.Kind() != models.KindArray {
		w.report(path, i18n.CodeNotArray, map[string]string{"actual": actual.Kind().String()})
		return
	}

	n := min(expected.Len(), actual.Len())
	for i := 0; i < n; i++ {
		w.walk(expected.Index(i), actual.Index(i), IndexPath(path, i))
	}
	for i := n; i < expected.Len(); i++ {
		w.report(IndexPath(path, i), i18n.CodeMissingElement, map[string]string{
			"index":  strconv.Itoa(i),
			"parent": path,
		})
	}
	for i := n; i < actual.Len(); i++ {
		w.report(IndexPath(path, i), i18n.CodeExtraElement, map[string]string{
			"index":  strconv.Itoa(i),
			"parent": path,
		})
	}
}

func (w *walker) primitive(expected, actual models.Value, path string) {
	if expected.Kind() != actual.Kind() {
		w.report(path, i18n.CodeWrongType, map[string]string{
			"expected": expected.Kind().String(),
			"actual":   actual.Kind().String(),
		})
		return
	}
	if !expected.Equal(actual) {
		w.report(path, i18n.CodeWrongValue, map[string]string{
			"expected": expected.String(),
			"actual":   actual.String(),
		})
	}
}

// KeyPath appends an object key to a dotted path.
func KeyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// IndexPath appends an array index to a path.
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
