package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/gini/internal/improve"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleImprovement() *improve.Improvement {
	return &improve.Improvement{
		Languages: []string{"en", "kn"},
		Samples: map[string][]string{
			"en": {" First sample. ", "Second sample."},
			"kn": {"ಮೊದಲ"},
		},
	}
}

func TestWriteImprovementTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImprovement(&buf, sampleImprovement(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "en Content")
	assert.Contains(t, out, "kn Content")
	assert.Contains(t, out, "First sample.")
	assert.NotContains(t, out, " First sample.  ")
	assert.Less(t, strings.Index(out, "en Content"), strings.Index(out, "kn Content"))
}

func TestWriteImprovementTableRepeatedLanguage(t *testing.T) {
	imp := &improve.Improvement{
		Languages: []string{"en", "en"},
		Samples:   map[string][]string{"en": {"Only sample."}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeImprovement(&buf, imp, FormatTable))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "en Content"))
	assert.Equal(t, 2, strings.Count(out, "Only sample."), "one row per table")
}

func TestWriteImprovementTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImprovement(&buf, &improve.Improvement{}, FormatTable))
	assert.Contains(t, buf.String(), "no samples")
}

func TestWriteImprovementJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImprovement(&buf, sampleImprovement(), FormatJSON))

	var got improve.Improvement
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	if diff := cmp.Diff(sampleImprovement(), &got); diff != "" {
		t.Errorf("json output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteImprovementYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeImprovement(&buf, sampleImprovement(), FormatYAML))
	assert.True(t, strings.HasPrefix(buf.String(), "languages:"))

	var got improve.Improvement
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"en", "kn"}, got.Languages)
}

func TestWriteImprovementUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeImprovement(&buf, sampleImprovement(), "xml"))
	assert.Error(t, validFormat("xml"))
	assert.NoError(t, validFormat(FormatYAML))
}

func TestParseCopyTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    copyTarget
		wantErr bool
	}{
		{in: "en:2", want: copyTarget{Language: "en", Index: 2}},
		{in: "kn", want: copyTarget{Language: "kn", Index: 1}},
		{in: " en:1 ", want: copyTarget{Language: "en", Index: 1}},
		{in: "en:0", wantErr: true},
		{in: "en:x", wantErr: true},
		{in: ":1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCopyTarget(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopyTargetSelect(t *testing.T) {
	imp := sampleImprovement()

	text, err := copyTarget{Language: "en", Index: 1}.Select(imp)
	require.NoError(t, err)
	assert.Equal(t, "First sample.", text)

	_, err = copyTarget{Language: "en", Index: 3}.Select(imp)
	assert.Error(t, err)

	_, err = copyTarget{Language: "fr", Index: 1}.Select(imp)
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	got, err := readInput([]string{"hello", "world"}, "", strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	got, err = readInput(nil, "", strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", got)

	got, err = readInput(nil, "-", strings.NewReader("dash"))
	require.NoError(t, err)
	assert.Equal(t, "dash", got)

	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))
	got, err = readInput(nil, path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	_, err = readInput(nil, filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}
