package e2e_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binary string

// TestMain builds the binary once so tests can run it from any directory
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "formatdrill-e2e-bin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create build dir: %v\n", err)
		os.Exit(1)
	}

	binary = filepath.Join(dir, "formatdrill")
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}
	build := exec.Command("go", "build", "-o", binary, "../..")
	if output, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build formatdrill: %v\n%s", err, output)
		_ = os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type result struct {
	stdout string
	stderr string
	err    error
}

// drill runs the binary in dir (the test's directory when empty)
func drill(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func sample(name string) string {
	return filepath.Join("..", "..", "testdata", "samples", name)
}

// TestEndToEnd_Walkthrough solves every built-in exercise in order
func TestEndToEnd_Walkthrough(t *testing.T) {
	list := drill(t, "", "", "exercises")
	require.NoError(t, list.err, list.stderr)
	assert.Contains(t, list.stdout, "json-1")
	assert.Contains(t, list.stdout, "json-2")
	assert.Contains(t, list.stdout, "yml-1")

	steps := []struct {
		id     string
		answer string
		want   string
	}{
		{
			id:     "json-1",
			answer: `{"name": "علی", "family": "زارع", "age": 20, "is_student": true, "has_job": null}`,
			want:   "Correct! Next exercise: json-2\n",
		},
		{
			id:     "json-2",
			answer: `{"has_job": null, "is_student": true, "age": 20, "family": "zare", "name": "ali"}`,
			want:   "Correct! Next exercise: yml-1\n",
		},
		{
			id:     "yml-1",
			answer: "team_name: کدموز\nmembers:\n  - علی\n  - سارا\n  - کوروش\n",
			want:   "Correct! That was the last exercise.\n",
		},
	}

	for _, step := range steps {
		t.Run(step.id, func(t *testing.T) {
			show := drill(t, "", "", "show", step.id)
			require.NoError(t, show.err, show.stderr)
			assert.Contains(t, show.stdout, "("+step.id+", ")

			res := drill(t, "", step.answer, "check", step.id)
			require.NoError(t, res.err, res.stderr)
			assert.Equal(t, step.want, res.stdout)
		})
	}
}

// TestEndToEnd_StarterTextsFail checks that no starter text already solves its exercise
func TestEndToEnd_StarterTextsFail(t *testing.T) {
	res := drill(t, "", `{
  "name": "ممد",
  "family": true,
  age: null,
  "is_student": 5,
  "has_job": false,
}`, "check", "json-1")
	assert.Error(t, res.err)
	assert.Contains(t, res.stderr, "Syntax error: ")

	res = drill(t, "", "team_name: \"یوهو\"\nmembers:\n  - \"علی\"\n", "--lang", "fa", "check", "yml-1")
	assert.Error(t, res.err)
	assert.Contains(t, res.stdout, "team_name: ")
	assert.Contains(t, res.stdout, "members[1]: ")
	assert.Contains(t, res.stdout, "members[2]: ")
	assert.Contains(t, res.stderr, "3 اشکال پیدا شد")
}

// TestEndToEnd_ConversionChain converts a document through every format and back
func TestEndToEnd_ConversionChain(t *testing.T) {
	original, err := os.ReadFile(sample("profile.json"))
	require.NoError(t, err)

	tempDir := t.TempDir()
	yamlFile := filepath.Join(tempDir, "profile.yaml")
	xmlFile := filepath.Join(tempDir, "profile.xml")
	jsonFile := filepath.Join(tempDir, "profile.json")

	res := drill(t, "", "", "convert", "-i", sample("profile.json"), "-o", yamlFile)
	require.NoError(t, res.err, res.stderr)

	res = drill(t, "", "", "convert", "-i", yamlFile, "-o", jsonFile)
	require.NoError(t, res.err, res.stderr)

	back, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(back))

	// XML needs a single root element
	wrapped := `{"profile": ` + string(original) + `}`
	res = drill(t, "", wrapped, "convert", "--from", "json", "-o", xmlFile)
	require.NoError(t, res.err, res.stderr)

	xmlText, err := os.ReadFile(xmlFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(xmlText), "<profile>\n"))
	assert.Contains(t, string(xmlText), "  <skills>JS</skills>\n  <skills>React</skills>\n")
	assert.Contains(t, string(xmlText), "  <manager/>\n")
}

// TestEndToEnd_XMLRoundTrip checks that compact XML survives a trip through JSON
func TestEndToEnd_XMLRoundTrip(t *testing.T) {
	original, err := os.ReadFile(sample("team.xml"))
	require.NoError(t, err)

	asJSON := drill(t, "", "", "convert", "-i", sample("team.xml"), "-t", "json")
	require.NoError(t, asJSON.err, asJSON.stderr)
	assert.Contains(t, asJSON.stdout, `"_declaration"`)

	asXML := drill(t, "", asJSON.stdout, "convert", "-f", "json", "-t", "xml")
	require.NoError(t, asXML.err, asXML.stderr)
	assert.Equal(t, string(original), asXML.stdout)
}

// TestEndToEnd_CSV renders the sample table
func TestEndToEnd_CSV(t *testing.T) {
	res := drill(t, "", "", "csv", "-i", sample("people.csv"))
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "name  age  city\n----  ---  ------\nAli   22   Tehran\nSara  25   Shiraz\n", res.stdout)

	res = drill(t, "", "", "convert", "-i", sample("people.csv"), "-t", "json")
	require.NoError(t, res.err, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "[\n  [\n    \"name\",\n    \"age\",\n    \"city\"\n  ],"))
	assert.Contains(t, res.stdout, `"Shiraz"`)

	res = drill(t, "", `{"a": 1}`, "convert", "-f", "json", "-t", "csv")
	assert.Error(t, res.err, "CSV is not an output format")
	assert.Contains(t, res.stderr, "CSV output is not supported")
}

// TestEndToEnd_ConfigDiscovery runs from a directory holding a config file
// that switches the language, the indent and adds an exercise
func TestEndToEnd_ConfigDiscovery(t *testing.T) {
	projectDir := t.TempDir()
	nestedDir := filepath.Join(projectDir, "answers")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".formatdrill.yml"), []byte(`
language: fa
formatting:
  indent: 4
exercises:
  catalog: exercises.yml
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "exercises.yml"), []byte(`
exercises:
  - id: xml-1
    format: xml
    title:
      en: Write a note
      fa: یک یادداشت بنویسید
    template:
      note:
        to:
          _text: Ali
`), 0o644))

	list := drill(t, nestedDir, "", "exercises")
	require.NoError(t, list.err, list.stderr)
	assert.Contains(t, list.stdout, "xml-1")
	assert.Contains(t, list.stdout, "یک یادداشت بنویسید")

	res := drill(t, nestedDir, "<note><to>Ali</to></note>", "check", "xml-1")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "ایول! این آخرین تمرین بود.\n", res.stdout)

	res = drill(t, nestedDir, "a:\n  - 1\n", "convert", "-f", "yaml", "-t", "json")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "{\n    \"a\": [\n        1\n    ]\n}\n", res.stdout)

	// the command line wins over the config file
	res = drill(t, nestedDir, "<note><to>Sara</to></note>", "--lang", "en", "check", "xml-1")
	assert.Error(t, res.err)
	assert.Contains(t, res.stdout, "wrong value for 'note.to._text'")
}

// TestEndToEnd_BadConfig reports configuration errors before running a command
func TestEndToEnd_BadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "formatdrill.yaml"), []byte("language: de\n"), 0o644))

	res := drill(t, dir, "", "exercises")
	assert.Error(t, res.err)
	assert.Contains(t, res.stderr, "Configuration error:")
}

// TestEndToEnd_Debug checks that debug logging goes to stderr only
func TestEndToEnd_Debug(t *testing.T) {
	res := drill(t, "", `{"a": 1}`, "--debug", "convert", "-f", "json", "-t", "yaml")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "a: 1\n", res.stdout)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "converted document")
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		args     []string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			input:    `{}`,
			args:     []string{"-f", "json", "-t", "yaml"},
			expected: "{}\n",
		},
		{
			name:     "EmptyArray",
			input:    `[]`,
			args:     []string{"-f", "json", "-t", "yaml"},
			expected: "[]\n",
		},
		{
			name:     "SingleNumber",
			input:    `42`,
			args:     []string{"-f", "json", "-t", "yaml"},
			expected: "42\n",
		},
		{
			name:     "NumericString",
			input:    `{"zip": "22"}`,
			args:     []string{"-f", "json", "-t", "yaml"},
			expected: "zip: \"22\"\n",
		},
		{
			name:     "DuplicateKeys",
			input:    `{"a": 1, "b": 2, "a": 3}`,
			args:     []string{"-f", "json", "-t", "json"},
			expected: "{\n  \"a\": 3,\n  \"b\": 2\n}\n",
		},
		{
			name:     "DeeplyNestedArray",
			input:    `[[[[42]]]]`,
			args:     []string{"-f", "json", "-t", "json"},
			expected: "[\n  [\n    [\n      [\n        42\n      ]\n    ]\n  ]\n]\n",
		},
		{
			name:    "TrailingComma",
			input:   `{"name": "Invalid JSON",}`,
			args:    []string{"-f", "json", "-t", "yaml"},
			isError: true,
		},
		{
			name:    "PrimitiveToXML",
			input:   `"just a string"`,
			args:    []string{"-f", "json", "-t", "xml"},
			isError: true,
		},
		{
			name:    "MultipleYAMLDocuments",
			input:   "a: 1\n---\nb: 2\n",
			args:    []string{"-f", "yaml", "-t", "json"},
			isError: true,
		},
		{
			name:    "UnknownFormat",
			input:   `{}`,
			args:    []string{"-f", "toml", "-t", "json"},
			isError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := drill(t, "", tc.input, append([]string{"convert"}, tc.args...)...)

			if tc.isError {
				assert.Error(t, res.err, "Expected an error for %s", tc.name)
				assert.NotEmpty(t, res.stderr)
				return
			}
			require.NoError(t, res.err, "CLI command failed: %s", res.stderr)
			assert.Equal(t, tc.expected, res.stdout)
		})
	}
}
