package ui

import (
	"context"
	"testing"

	"kisan/internal/model"
	"kisan/internal/provider"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type downAdvisor struct{}

func (downAdvisor) Answer(context.Context, provider.AnswerRequest) (string, error) {
	return "", provider.Errorf("answer", provider.ErrUnavailable, "advisor offline")
}

func TestVoiceFlowReachesAnswered(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	require.Equal(t, model.VoiceIdle, v.Phase())

	cmd := v.Update(keyPress(" "))
	require.Equal(t, model.VoiceListening, v.Phase())
	require.True(t, v.State().Listening)

	drain(t, v, cmd)
	st := v.State()
	require.Equal(t, model.VoiceAnswered, v.Phase())
	require.False(t, st.Listening)
	require.False(t, st.Processing)
	require.Contains(t, provider.SampleQueries, st.Transcript)
	require.Contains(t, provider.SampleAnswers, st.Response)
	require.Empty(t, v.Err())

	out := ansi.Strip(v.View(100, 40))
	require.Contains(t, out, st.Transcript)
	require.Contains(t, out, "Kisan Assistant")
}

func TestVoiceStartOnlyFromIdle(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	require.NotNil(t, v.Start())
	id := v.requestID

	require.Nil(t, v.Start())
	require.Equal(t, id, v.requestID)
	require.Nil(t, v.BeginTyping())
	require.False(t, v.Capturing())
}

func TestVoiceStopDropsLateTranscript(t *testing.T) {
	deps := testDeps(t)
	deps.Services.Speech = stubSpeech{text: "late words"}
	v := NewVoiceModel(deps)

	cmd := v.Start()
	v.Update(keyPress("s"))
	require.Equal(t, model.VoiceIdle, v.Phase())

	// The recogniser still answers; the result must not surface.
	drain(t, v, cmd)
	require.Equal(t, model.VoiceIdle, v.Phase())
	require.Empty(t, v.State().Transcript)
	require.Empty(t, v.State().Response)
}

func TestVoiceStopOutsideListeningIsIgnored(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	drain(t, v, v.Start())
	require.Equal(t, model.VoiceAnswered, v.Phase())

	v.Stop()
	require.Equal(t, model.VoiceAnswered, v.Phase())
}

func TestVoiceRetryClearsState(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	drain(t, v, v.Start())
	require.Equal(t, model.VoiceAnswered, v.Phase())

	v.Update(keyPress("r"))
	require.Equal(t, model.VoiceQueryState{}, v.State())

	// Retry while processing cancels the pending answer.
	cmd := v.SubmitTyped("When should I sow ragi?")
	require.Equal(t, model.VoiceProcessing, v.Phase())
	v.Retry()
	drain(t, v, cmd)
	require.Equal(t, model.VoiceQueryState{}, v.State())

	// Retry while listening drops the transcript still on its way.
	cmd = v.Start()
	require.Equal(t, model.VoiceListening, v.Phase())
	v.Retry()
	drain(t, v, cmd)
	require.Equal(t, model.VoiceQueryState{}, v.State())
}

func TestVoiceTypedQuestion(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	v.Update(keyPress("t"))
	require.True(t, v.Capturing())

	require.Nil(t, v.SubmitTyped("   "))
	require.NotEmpty(t, v.Err())
	require.True(t, v.Capturing())

	drain(t, v, v.SubmitTyped("How much urea for paddy?"))
	require.False(t, v.Capturing())
	require.Equal(t, model.VoiceAnswered, v.Phase())
	require.Equal(t, "How much urea for paddy?", v.State().Transcript)
	require.Equal(t, provider.SampleAnswers[0], v.State().Response)
}

func TestVoiceProviderErrorReturnsToIdle(t *testing.T) {
	deps := testDeps(t)
	deps.Services.Advisor = downAdvisor{}
	v := NewVoiceModel(deps)

	drain(t, v, v.Start())
	require.Equal(t, model.VoiceIdle, v.Phase())
	require.Equal(t, provider.UserMessage(provider.ErrUnavailable), v.Err())
	require.Contains(t, ansi.Strip(v.View(100, 40)), "unavailable")
}

func TestVoiceQuickActions(t *testing.T) {
	v := NewVoiceModel(testDeps(t))
	require.Equal(t, model.NavigateMsg{Screen: model.ScreenImage}, v.Update(keyPress("i"))())
	require.Equal(t, model.NavigateMsg{Screen: model.ScreenMandi}, v.Update(keyPress("m"))())
}
