package improve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

type fakePrompts struct {
	err error
}

func (f fakePrompts) Generate(input string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "PROMPT:" + input, nil
}

type fakeCompleter struct {
	resp   *genai.GenerateContentResponse
	err    error
	prompt string
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.prompt = prompt
	return f.resp, f.err
}

func TestImproveMissingKey(t *testing.T) {
	svc := NewService(fakePrompts{}, nil, nil)
	assert.False(t, svc.Ready())

	res := svc.Improve(context.Background(), "text")
	require.True(t, res.Failed())
	assert.Equal(t, KindConfig, res.Kind)
	assert.ErrorIs(t, res.Err, ErrMissingAPIKey)
}

func TestImproveSuccess(t *testing.T) {
	fc := &fakeCompleter{resp: textResponse("```json\n{\"languages\":[\"en\",\"kn\"],\"samples\":{\"en\":[\"A\",\"B\"],\"kn\":[\"C\"]}}\n```")}
	svc := NewService(fakePrompts{}, fc, zap.NewNop())
	assert.True(t, svc.Ready())

	res := svc.Improve(context.Background(), "my text")
	require.False(t, res.Failed(), res.Message())
	assert.Equal(t, "PROMPT:my text", fc.prompt)
	assert.Equal(t, []string{"en", "kn"}, res.Improvement.Languages)
	assert.Equal(t, []string{"A", "B"}, res.Improvement.Samples["en"])
}

func TestImproveTransportError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("connection refused")}
	res := NewService(fakePrompts{}, fc, nil).Improve(context.Background(), "x")

	require.True(t, res.Failed())
	assert.Equal(t, KindTransport, res.Kind)
	assert.Equal(t, "an error occurred: connection refused", res.Message())
}

func TestImprovePromptError(t *testing.T) {
	fc := &fakeCompleter{}
	res := NewService(fakePrompts{err: errors.New("bad template")}, fc, nil).Improve(context.Background(), "x")

	require.True(t, res.Failed())
	assert.Equal(t, KindConfig, res.Kind)
	assert.Zero(t, fc.calls)
}

func TestImproveShapeErrors(t *testing.T) {
	fc := &fakeCompleter{resp: &genai.GenerateContentResponse{}}
	res := NewService(fakePrompts{}, fc, nil).Improve(context.Background(), "x")

	require.True(t, res.Failed())
	assert.Equal(t, KindShape, res.Kind)
	assert.ErrorIs(t, res.Err, ErrNoCandidates)
}

func TestImproveParseErrorLogsRaw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	fc := &fakeCompleter{resp: textResponse("Sure! Here is your text.")}
	res := NewService(fakePrompts{}, fc, zap.New(core)).Improve(context.Background(), "x")

	require.True(t, res.Failed())
	assert.Equal(t, KindParse, res.Kind)
	assert.Equal(t, "failed to parse the response", res.Message())
	assert.NotContains(t, res.Message(), "Sure!")

	warns := logs.FilterMessage("parsing completion").All()
	require.Len(t, warns, 1)
	assert.Equal(t, zap.WarnLevel, warns[0].Level)
	assert.NotContains(t, warns[0].ContextMap(), "raw")

	raw := logs.FilterMessage("raw completion").All()
	require.Len(t, raw, 1)
	assert.Equal(t, zap.DebugLevel, raw[0].Level)
	assert.Equal(t, "Sure! Here is your text.", raw[0].ContextMap()["raw"])
}

func TestImproveParseErrorHidesRawAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fc := &fakeCompleter{resp: textResponse("PRIVATE raw completion")}
	res := NewService(fakePrompts{}, fc, zap.New(core)).Improve(context.Background(), "x")

	require.True(t, res.Failed())
	require.NotZero(t, logs.Len())
	for _, e := range logs.All() {
		assert.NotContains(t, e.ContextMap(), "raw")
		assert.NotContains(t, e.Message, "PRIVATE")
	}
}
