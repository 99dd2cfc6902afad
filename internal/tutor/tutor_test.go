package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"

	"github.com/abhisek/playarcade/internal/llm"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		text string
		want language.Tag
	}{
		{"What is a noun?", English},
		{"संज्ञा क्या है?", Hindi},
		{"பெயர்ச்சொல் என்றால் என்ன?", Tamil},
		{"നാമം എന്താണ്?", Malayalam},
		{"hello नमस्ते", Hindi},
		{"", English},
		{"12 + 7 = ?", English},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Detect(c.text), c.text)
	}
}

func TestDetectPrefersDevanagari(t *testing.T) {
	// Tamil first in the text, but Devanagari is checked first.
	assert.Equal(t, Hindi, Detect("வணக்கம் नमस्ते"))
}

func TestLanguageName(t *testing.T) {
	assert.Contains(t, LanguageName(Hindi), "Hindi")
	assert.Contains(t, LanguageName(English), "English")
}

func TestAskOffline(t *testing.T) {
	tu := New(nil)
	r, err := tu.Ask(context.Background(), "  नमस्ते  ")
	require.NoError(t, err)
	assert.True(t, r.Offline)
	assert.Equal(t, Hindi, r.Lang)
	assert.Equal(t, "यह रहा आपका उत्तर, सरल तरीके से समझाया गया है। 😊", r.Text)
}

func TestAskEmpty(t *testing.T) {
	_, err := New(nil).Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAskUsesModel(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockReply{Content: `{"reply":"A noun names a person, place or thing."}`},
		llm.MockReply{Content: `{"reply":"Dog is a noun."}`},
	)
	tu := New(mock, WithGrade("grade3"))

	r, err := tu.Ask(context.Background(), "What is a noun?")
	require.NoError(t, err)
	assert.False(t, r.Offline)
	assert.Equal(t, English, r.Lang)
	assert.Equal(t, "A noun names a person, place or thing.", r.Text)

	_, err = tu.Ask(context.Background(), "Give an example")
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "tutor-reply", calls[0].Schema.Name)
	assert.Contains(t, calls[0].System, "grade3")
	assert.Contains(t, calls[0].System, "English")
	require.Len(t, calls[1].Messages, 3)
	assert.Equal(t, llm.RoleAssistant, calls[1].Messages[1].Role)
	assert.Equal(t, "Give an example", calls[1].Messages[2].Content)
}

func TestAskFallsBackOnModelError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := llm.NewMockProvider(llm.MockReply{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	tu := New(mock, WithLogger(zap.New(core)))

	r, err := tu.Ask(context.Background(), "இது என்ன?")
	require.NoError(t, err)
	assert.True(t, r.Offline)
	assert.Equal(t, Tamil, r.Lang)
	assert.Equal(t, 1, logs.FilterMessage("tutor falling back to canned reply").Len())
}

func TestAskFallsBackOnBlankReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{Content: `{"reply":"  "}`})
	r, err := New(mock).Ask(context.Background(), "why is the sky blue")
	require.NoError(t, err)
	assert.True(t, r.Offline)
	assert.Equal(t, "Here is your answer explained clearly. 😊", r.Text)
}

func TestAskCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(llm.NewMockProvider()).Ask(ctx, "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryIsBoundedAndResettable(t *testing.T) {
	mock := llm.NewMockProvider()
	tu := New(mock)
	for range 8 {
		mock.Add(llm.MockReply{Content: `{"reply":"ok"}`})
		_, err := tu.Ask(context.Background(), "again")
		require.NoError(t, err)
	}
	assert.Len(t, tu.history, maxHistory)

	tu.Reset()
	mock.Add(llm.MockReply{Content: `{"reply":"fresh"}`})
	_, err := tu.Ask(context.Background(), "new topic")
	require.NoError(t, err)
	calls := mock.Calls()
	assert.Len(t, calls[len(calls)-1].Messages, 1)
}
