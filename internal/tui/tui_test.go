package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, text string) ([]pronounce.Result, error) {
	ret := m.Called(ctx, text)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]pronounce.Result), ret.Error(1)
}

func (m *MockTranscriber) TranscribeIPA(text string) []pronounce.Result {
	ret := m.Called(text)
	return ret.Get(0).([]pronounce.Result)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

// enter presses Enter and feeds the conversion result back into the model.
func enter(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		return m
	}
	require.True(t, m.pending)
	assert.Contains(t, m.View(), "looking up")
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestWordsMode(t *testing.T) {
	mockTranscriber := new(MockTranscriber)
	mockTranscriber.On("Transcribe", mock.Anything, "hello").Return([]pronounce.Result{
		{Word: "hello", Phonetic: "hʌloʊ", Hangul: "허로우", Source: pronounce.SourceDictionary, Found: true},
	}, nil)

	m := New(context.Background(), mockTranscriber, false)
	m = typeText(t, m, "hello")
	m = enter(t, m)

	require.Len(t, m.history, 1)
	assert.False(t, m.pending)
	assert.Empty(t, m.textInput.Value())

	view := m.View()
	assert.Contains(t, view, "> hello")
	assert.Contains(t, view, "Pronunciation:")
	assert.Contains(t, view, "허로우")
	assert.Contains(t, view, "heorou")
	mockTranscriber.AssertExpectations(t)
}

func TestTabSwitchesToIPA(t *testing.T) {
	mockTranscriber := new(MockTranscriber)
	mockTranscriber.On("TranscribeIPA", "pa").Return([]pronounce.Result{
		{Word: "pa", Phonetic: "pa", Hangul: "빠", Source: pronounce.SourceIPA, Found: true},
	})

	m := New(context.Background(), mockTranscriber, false)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, modeIPA, m.mode)
	assert.Contains(t, m.View(), "IPA")

	m = enter(t, typeText(t, m, "pa"))
	assert.Contains(t, m.View(), "빠")
	assert.NotContains(t, m.View(), "Pronunciation:")
	mockTranscriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestLookupErrorIsShown(t *testing.T) {
	mockTranscriber := new(MockTranscriber)
	mockTranscriber.On("Transcribe", mock.Anything, "hello").Return(nil, errors.New("lexicala unavailable"))

	m := enter(t, typeText(t, New(context.Background(), mockTranscriber, false), "hello"))
	assert.Contains(t, m.View(), "Error: lexicala unavailable")
}

func TestEmptyEnterDoesNothing(t *testing.T) {
	m := New(context.Background(), new(MockTranscriber), false)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, next.(Model).history)
}

func TestHistoryIsBounded(t *testing.T) {
	mockTranscriber := new(MockTranscriber)
	mockTranscriber.On("TranscribeIPA", mock.Anything).Return([]pronounce.Result{})

	m := New(context.Background(), mockTranscriber, true)
	for range maxHistory + 5 {
		m = enter(t, typeText(t, m, "a"))
	}
	assert.Len(t, m.history, maxHistory)
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := New(context.Background(), new(MockTranscriber), false).Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestRenderResultNotFound(t *testing.T) {
	out := RenderResult(pronounce.Result{Word: "xyzzy", Hangul: pronounce.NotFoundMark})
	assert.Contains(t, out, "Word: xyzzy")
	assert.Contains(t, out, "No pronunciation found")
	assert.NotContains(t, out, "한글:")
}
