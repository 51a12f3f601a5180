package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVoicePhase(t *testing.T) {
	cases := []struct {
		state VoiceQueryState
		want  VoicePhase
	}{
		{VoiceQueryState{}, VoiceIdle},
		{VoiceQueryState{Transcript: "partial"}, VoiceIdle},
		{VoiceQueryState{Listening: true}, VoiceListening},
		{VoiceQueryState{Processing: true, Transcript: "q"}, VoiceProcessing},
		{VoiceQueryState{Transcript: "q", Response: "a"}, VoiceAnswered},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.state.Phase(), "%+v", tc.state)
	}
	require.Equal(t, "processing", VoiceProcessing.String())
}

func TestImagePhase(t *testing.T) {
	res := &AnalysisResult{Disease: "Leaf Spot"}
	cases := []struct {
		state ImageAnalysisState
		want  ImagePhase
	}{
		{ImageAnalysisState{}, ImageEmpty},
		{ImageAnalysisState{Result: res}, ImageEmpty},
		{ImageAnalysisState{Image: []byte{1}}, ImageSelected},
		{ImageAnalysisState{Image: []byte{1}, Analyzing: true}, ImageAnalyzing},
		{ImageAnalysisState{Image: []byte{1}, Result: res}, ImageResulted},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.state.Phase())
	}
}

func TestAnalysisResultFlags(t *testing.T) {
	healthy := AnalysisResult{Severity: SeverityNone, Treatment: "No treatment needed"}
	require.True(t, healthy.Healthy())
	require.False(t, healthy.NeedsTreatment())

	sick := AnalysisResult{Severity: SeverityModerate, Treatment: "Copper fungicide"}
	require.False(t, sick.Healthy())
	require.True(t, sick.NeedsTreatment())
}

func TestFilterSchemes(t *testing.T) {
	schemes := []Scheme{
		{ID: 1, Name: "A", Category: CategoryFinancial},
		{ID: 2, Name: "B", Category: CategoryInsurance},
		{ID: 3, Name: "C", Category: CategoryFinancial},
	}
	orig := append([]Scheme(nil), schemes...)

	require.Len(t, FilterSchemes(schemes, CategoryAll), 3)
	fin := FilterSchemes(schemes, CategoryFinancial)
	require.Equal(t, []Scheme{schemes[0], schemes[2]}, fin)
	require.Empty(t, FilterSchemes(schemes, CategoryTraining))
	require.Equal(t, FilterSchemes(fin, CategoryFinancial), FilterSchemes(schemes, CategoryFinancial))
	require.Equal(t, orig, schemes)
}

func TestLocations(t *testing.T) {
	require.True(t, IsLocation(DefaultLocation))
	require.False(t, IsLocation("bangalore"))
	require.Len(t, Locations, 6)
}
