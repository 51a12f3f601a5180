package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"kisan/internal/model"
	"kisan/internal/provider"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWithoutImageIsNoop(t *testing.T) {
	v := NewImageModel(testDeps(t))
	require.Nil(t, v.Analyze())
	require.Nil(t, v.Update(keyPress("a")))
	require.Equal(t, model.ImageEmpty, v.Phase())
	require.Equal(t, model.ImageAnalysisState{}, v.State())
}

func TestAnalyzeSelectedImage(t *testing.T) {
	v := NewImageModel(testDeps(t))
	v.Update(keyPress("s"))
	require.Equal(t, model.ImageSelected, v.Phase())

	cmd := v.Update(keyPress("a"))
	require.Equal(t, model.ImageAnalyzing, v.Phase())
	require.Nil(t, v.Analyze(), "analyze is a no-op while analyzing")
	require.False(t, v.SelectImage("other.png", []byte{1}), "selection is locked while analyzing")

	drain(t, v, cmd)
	require.Equal(t, model.ImageResulted, v.Phase())
	require.Equal(t, provider.SampleResults[0], *v.State().Result)

	out := ansi.Strip(v.View(120, 40))
	require.Contains(t, out, "Disease Detected")
	require.Contains(t, out, "Early Blight")
	require.Contains(t, out, "Treatment Recommendation")

	// A result is analyzed once; pick a new image to analyze again.
	require.Nil(t, v.Analyze())
}

func TestSelectImageClearsResult(t *testing.T) {
	v := NewImageModel(testDeps(t))
	v.SelectImage(SampleImageName, SampleLeafPNG())
	drain(t, v, v.Analyze())
	require.NotNil(t, v.State().Result)

	require.True(t, v.SelectImage("field.png", []byte("new bytes")))
	require.Nil(t, v.State().Result)
	require.Equal(t, model.ImageSelected, v.Phase())
	require.Equal(t, []byte("new bytes"), v.State().Image)
	require.Contains(t, ansi.Strip(v.View(120, 40)), "preview unavailable")
}

func TestClearImageDropsPendingResult(t *testing.T) {
	v := NewImageModel(testDeps(t))
	v.SelectImage(SampleImageName, SampleLeafPNG())
	cmd := v.Analyze()

	v.Update(keyPress("x"))
	require.Equal(t, model.ImageEmpty, v.Phase())
	drain(t, v, cmd)
	require.Equal(t, model.ImageAnalysisState{}, v.State())
}

func TestHealthyResultHidesTreatment(t *testing.T) {
	out := ansi.Strip(renderAnalysis(provider.SampleResults[2], 100))
	require.Contains(t, out, "Healthy Crop")
	require.NotContains(t, out, "Treatment Recommendation")
	require.Contains(t, out, "Prevention Tips")
}

func TestLoadImageFromDisk(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "leaf.png")
	require.NoError(t, os.WriteFile(good, SampleLeafPNG(), 0o600))
	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("not a picture"), 0o600))

	data, err := readImageFile(good)
	require.NoError(t, err)
	require.Equal(t, SampleLeafPNG(), data)

	for _, path := range []string{bad, dir, filepath.Join(dir, "missing.jpg")} {
		_, err := readImageFile(path)
		require.True(t, errors.Is(err, provider.ErrInvalidInput), path)
	}
}

func TestImagePromptLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, SampleLeafPNG(), 0o600))

	v := NewImageModel(testDeps(t))
	v.Update(keyPress("o"))
	require.True(t, v.Capturing())
	for _, r := range path {
		v.Update(keyPress(string(r)))
	}
	drain(t, v, v.Update(keyPress("enter")))

	require.False(t, v.Capturing())
	require.Equal(t, model.ImageSelected, v.Phase())
	require.Equal(t, "leaf.png", v.name)
	require.Empty(t, v.Err())
}

func TestRenderPreview(t *testing.T) {
	caps := TerminalCapabilities{}
	out := RenderPreview(SampleLeafPNG(), caps, 24, 8)
	require.NotEmpty(t, out)
	require.Contains(t, out, "\n")
	require.NotContains(t, out, "\x1b[", "plain output when colour is off")

	require.Empty(t, RenderPreview([]byte("garbage"), caps, 24, 8))
	require.Empty(t, RenderPreview(nil, caps, 24, 8))
}

func TestImageLoadDuringAnalysisIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, SampleLeafPNG(), 0o600))

	v := NewImageModel(testDeps(t))
	v.SelectImage(SampleImageName, SampleLeafPNG())
	v.Update(keyPress("o"))
	for _, r := range path {
		v.Update(keyPress(string(r)))
	}
	load := v.Update(keyPress("enter"))
	analyze := v.Analyze()
	require.Equal(t, model.ImageAnalyzing, v.Phase())

	drain(t, v, load)
	require.Equal(t, model.ImageAnalyzing, v.Phase())
	require.Equal(t, SampleImageName, v.name)
	require.Contains(t, v.Err(), "leaf.png")

	drain(t, v, analyze)
	require.Equal(t, model.ImageResulted, v.Phase())
	require.Contains(t, ansi.Strip(v.View(120, 40)), "leaf.png was not loaded")
}
