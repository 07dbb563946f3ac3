// Package improve turns a paragraph into multi-language improvement
// suggestions: it owns the result model, the response normalizer and the
// submission pipeline that joins the prompt builder and completion client.
package improve

import (
	"errors"
	"strings"
)

// Improvement is the structured reply requested from the model.
type Improvement struct {
	Languages []string            `json:"languages" yaml:"languages"`
	Samples   map[string][]string `json:"samples" yaml:"samples"`
}

// Row is one rendered sample: a language, its 1-based position within that
// language and the trimmed text used for display, copying and identity.
type Row struct {
	Language string
	Index    int
	Text     string
}

// Rows flattens the improvement in languages order. Samples listed under a
// language missing from Languages are not rendered.
func (imp *Improvement) Rows() []Row {
	if imp == nil {
		return nil
	}
	var rows []Row
	for _, lang := range imp.Languages {
		for i, s := range imp.Samples[lang] {
			rows = append(rows, Row{
				Language: lang,
				Index:    i + 1,
				Text:     strings.TrimSpace(s),
			})
		}
	}
	return rows
}

// Keys returns the trimmed text of every sample under every language in
// Samples, whether or not the language is listed in Languages.
func (imp *Improvement) Keys() []string {
	if imp == nil {
		return nil
	}
	var keys []string
	for _, samples := range imp.Samples {
		for _, s := range samples {
			keys = append(keys, strings.TrimSpace(s))
		}
	}
	return keys
}

// Empty reports whether there is nothing to render.
func (imp *Improvement) Empty() bool {
	return len(imp.Rows()) == 0
}

// Kind classifies a failed submission.
type Kind int

const (
	KindNone Kind = iota
	KindConfig
	KindTransport
	KindShape
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindShape:
		return "shape"
	case KindParse:
		return "parse"
	default:
		return "none"
	}
}

// Result is either a success carrying an Improvement or a failure carrying
// an error. Build it with Success or Failure so that exactly one side is set.
type Result struct {
	Improvement *Improvement
	Err         error
	Kind        Kind
}

// Success wraps a parsed improvement.
func Success(imp *Improvement) Result {
	if imp == nil {
		imp = &Improvement{}
	}
	return Result{Improvement: imp}
}

// Failure wraps an error of the given kind.
func Failure(kind Kind, err error) Result {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result{Err: err, Kind: kind}
}

// Failed reports whether the result is an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Message is the human-readable error text, empty on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
