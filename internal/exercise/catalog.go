// Package exercise holds the exercise catalog and the editor state of an
// exercise being answered.
package exercise

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/i18n"
	"github.com/mcncl/formatdrill/internal/models"
	"github.com/mcncl/formatdrill/internal/parser"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Localized is a text in several languages, keyed by language code.
type Localized map[string]string

// In returns the text for lang, falling back to English and then to any
// available translation.
func (l Localized) In(lang string) string {
	if s, ok := l[lang]; ok && s != "" {
		return s
	}
	if s, ok := l[i18n.English]; ok && s != "" {
		return s
	}
	for _, s := range l {
		return s
	}
	return ""
}

// Exercise is one task: the learner writes a document in Format that must
// match Template.
type Exercise struct {
	ID     string
	Title  Localized
	Prompt Localized
	Format models.Format

	// Arrays enables element-wise array checks for this exercise.
	Arrays   bool
	Next     string
	Starter  string
	Template models.Value
}

// Catalog is an ordered set of exercises.
type Catalog struct {
	exercises []*Exercise
	index     map[string]int
}

type catalogFile struct {
	Exercises []exerciseEntry `yaml:"exercises"`
}

type exerciseEntry struct {
	ID       string    `yaml:"id"`
	Title    Localized `yaml:"title"`
	Prompt   Localized `yaml:"prompt"`
	Format   string    `yaml:"format"`
	Arrays   bool      `yaml:"arrays"`
	Next     string    `yaml:"next"`
	Starter  string    `yaml:"starter"`
	Template yaml.Node `yaml:"template"`
}

// NormalizeID turns user input such as "JSON 1" or "Yml_1" into the
// canonical kebab-case id.
func NormalizeID(id string) string {
	return strcase.ToKebab(strings.TrimSpace(id))
}

// DefaultCatalog returns the built-in exercises.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(builtinCatalog)
}

// ParseCatalog decodes a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigError("failed to parse exercise catalog", err)
	}

	c := &Catalog{index: make(map[string]int)}
	for i, entry := range file.Exercises {
		ex, err := entry.build()
		if err != nil {
			return nil, errors.NewConfigError(
				fmt.Sprintf("invalid exercise #%d in catalog", i+1),
				err,
			)
		}
		c.put(ex)
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to read exercise catalog '%s'", path),
			err,
		)
	}
	return ParseCatalog(data)
}

func (e exerciseEntry) build() (*Exercise, error) {
	id := NormalizeID(e.ID)
	if id == "" {
		return nil, pkgerrors.New("exercise id is required")
	}

	format, err := models.ParseFormat(e.Format)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "exercise %s", id)
	}
	if format == models.FormatCSV {
		return nil, pkgerrors.Errorf("exercise %s: CSV answers cannot be checked", id)
	}

	if e.Template.Kind == 0 {
		return nil, pkgerrors.Errorf("exercise %s: template is required", id)
	}
	template, err := parser.FromYAMLNode(&e.Template)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "exercise %s: template", id)
	}

	next := ""
	if e.Next != "" {
		next = NormalizeID(e.Next)
	}
	return &Exercise{
		ID:       id,
		Title:    e.Title,
		Prompt:   e.Prompt,
		Format:   format,
		Arrays:   e.Arrays,
		Next:     next,
		Starter:  e.Starter,
		Template: template,
	}, nil
}

func (c *Catalog) put(ex *Exercise) {
	if i, ok := c.index[ex.ID]; ok {
		c.exercises[i] = ex
		return
	}
	c.index[ex.ID] = len(c.exercises)
	c.exercises = append(c.exercises, ex)
}

// Merge adds the exercises of other to c. Exercises with an existing id
// replace the original in place; new ones are appended.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, ex := range other.exercises {
		c.put(ex)
	}
}

// Check reports exercises whose next exercise does not exist.
func (c *Catalog) Check() error {
	for _, ex := range c.exercises {
		if ex.Next == "" {
			continue
		}
		if _, ok := c.index[ex.Next]; !ok {
			return errors.NewConfigError(
				fmt.Sprintf("exercise %s points to unknown next exercise %s", ex.ID, ex.Next),
				errors.ErrUnknownExercise,
			)
		}
	}
	return nil
}

// Lookup finds an exercise by id. The id is normalized first.
func (c *Catalog) Lookup(id string) (*Exercise, error) {
	i, ok := c.index[NormalizeID(id)]
	if !ok {
		return nil, errors.NewInputError(fmt.Sprintf("no exercise named '%s'", id), errors.ErrUnknownExercise)
	}
	return c.exercises[i], nil
}

// All returns the exercises in catalog order.
func (c *Catalog) All() []*Exercise {
	out := make([]*Exercise, len(c.exercises))
	copy(out, c.exercises)
	return out
}

// Len returns the number of exercises.
func (c *Catalog) Len() int { return len(c.exercises) }
