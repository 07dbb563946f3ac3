package improve

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

// Shape errors, one per way the completion can come back empty.
var (
	ErrNilResponse    = errors.New("no response from the API")
	ErrNoCandidates   = errors.New("no candidates found in the API response")
	ErrNoContentParts = errors.New("unexpected structure in the API response (missing content parts)")
	ErrNoText         = errors.New("no text content found in the API response")
)

// ErrParse is matched by errors.Is for every *ParseError.
var ErrParse = errors.New("failed to parse the response")

var errNotObject = errors.New("payload is not a JSON object")

// ParseError reports completion text that is not valid JSON. Raw is kept for
// diagnostics and never shown to the user.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string { return ErrParse.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// fencePattern captures everything between a ```json line and a closing ```.
var fencePattern = regexp.MustCompile("(?s)```json\\r?\\n(.*)\\r?\\n```")

// ExtractJSON returns the trimmed interior of a ```json fenced block, or text
// unchanged when no such block exists.
func ExtractJSON(text string) string {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return text
	}
	return strings.TrimSpace(m[1])
}

// ParseImprovement decodes completion text, stripping an optional fence.
// Missing languages or samples fields are not an error; a payload that is
// not an object, or fields of the wrong type, are.
func ParseImprovement(text string) (*Improvement, error) {
	var payload *Improvement
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &payload); err != nil {
		return nil, &ParseError{Raw: text, Err: err}
	}
	if payload == nil {
		return nil, &ParseError{Raw: text, Err: errNotObject}
	}
	return payload, nil
}

// Normalize converts a provider response into an Improvement. The returned
// error is one of the shape sentinels or a *ParseError.
func Normalize(resp *genai.GenerateContentResponse) (*Improvement, error) {
	text, err := completionText(resp)
	if err != nil {
		return nil, err
	}
	return ParseImprovement(text)
}

func completionText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNilResponse
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	first := resp.Candidates[0]
	if first == nil || first.Content == nil || len(first.Content.Parts) == 0 {
		return "", ErrNoContentParts
	}
	part := first.Content.Parts[0]
	if part == nil || part.Text == "" {
		return "", ErrNoText
	}
	return part.Text, nil
}

// kindOf maps a Normalize error to its result kind.
func kindOf(err error) Kind {
	if errors.Is(err, ErrParse) {
		return KindParse
	}
	return KindShape
}
