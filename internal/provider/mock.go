package provider

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"kisan/internal/model"
)

// SampleQueries are the questions the mock speech-to-text "hears".
var SampleQueries = []string{
	"What is wrong with my tomato crop?",
	"How much fertilizer should I use for wheat?",
	"What are the current onion prices?",
	"When is the best time to plant rice?",
	"How do I treat fungal infection in my crops?",
}

// SampleAnswers are the replies of the mock advisory engine.
var SampleAnswers = []string{
	"Based on your description, your tomato crop might be suffering from early blight. I recommend applying copper-based fungicide in the evening. Make sure to remove affected leaves and improve air circulation.",
	"For wheat cultivation, apply 120 kg of nitrogen, 60 kg of phosphorus, and 40 kg of potassium per hectare. Apply in split doses - 1/3 at sowing, 1/3 at tillering, and 1/3 at grain filling stage.",
	"Current onion prices in your area are ₹18-22 per kg. The market is stable with slight upward trend expected due to monsoon season.",
	"The best time to plant rice is during the monsoon season, typically June-July. Ensure your field has proper drainage and the soil temperature is above 20°C.",
	"For fungal infections, use systemic fungicides like Propiconazole or Tebuconazole. Apply during cool hours and ensure good field hygiene by removing infected plant debris.",
}

// SampleResults are the outcomes of the mock crop classifier: two diseases
// and one healthy crop.
var SampleResults = []model.AnalysisResult{
	{
		Disease:     "Early Blight",
		Confidence:  89,
		Severity:    model.SeverityModerate,
		Treatment:   "Copper Fungicide",
		SprayTime:   "Evening",
		Description: "Early blight is a common fungal disease affecting tomatoes. Apply copper-based fungicide and remove affected leaves.",
		Prevention:  "Ensure good air circulation, avoid overhead watering, and maintain proper plant spacing.",
	},
	{
		Disease:     "Leaf Spot",
		Confidence:  76,
		Severity:    model.SeverityMild,
		Treatment:   "Neem Oil",
		SprayTime:   "Morning",
		Description: "Leaf spot is caused by bacterial infection. Use neem oil spray and improve drainage.",
		Prevention:  "Water at soil level, avoid splashing water on leaves, and remove infected plant debris.",
	},
	{
		Disease:     "Healthy Crop",
		Confidence:  95,
		Severity:    model.SeverityNone,
		Treatment:   "No treatment needed",
		SprayTime:   "N/A",
		Description: "Your crop appears healthy! Continue with regular care and monitoring.",
		Prevention:  "Maintain current care routine with proper watering and fertilization.",
	},
}

// Picker chooses an index in [0, n). Tests inject a deterministic one.
type Picker func(n int) int

// RandomPicker returns a uniform Picker safe for concurrent use.
func RandomPicker(seed int64) Picker {
	var mu sync.Mutex
	r := rand.New(rand.NewSource(seed))
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return r.Intn(n)
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MockSpeech pretends to listen for Delay, then returns a sample query.
type MockSpeech struct {
	Delay time.Duration
	Pick  Picker
}

func (m MockSpeech) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return "", err
	}
	return SampleQueries[m.Pick(len(SampleQueries))], nil
}

// MockAdvisor pretends to think for Delay, then returns a sample answer
// chosen independently of the question.
type MockAdvisor struct {
	Delay time.Duration
	Pick  Picker
}

func (m MockAdvisor) Answer(ctx context.Context, req AnswerRequest) (string, error) {
	if req.Transcript == "" {
		return "", Errorf("answer", ErrInvalidInput, "empty question")
	}
	if err := wait(ctx, m.Delay); err != nil {
		return "", err
	}
	return SampleAnswers[m.Pick(len(SampleAnswers))], nil
}

// MockClassifier pretends to analyze for Delay, then returns a sample result.
type MockClassifier struct {
	Delay time.Duration
	Pick  Picker
}

func (m MockClassifier) Classify(ctx context.Context, req ClassifyRequest) (model.AnalysisResult, error) {
	if len(req.Image) == 0 {
		return model.AnalysisResult{}, Errorf("classify", ErrInvalidInput, "no image")
	}
	if err := wait(ctx, m.Delay); err != nil {
		return model.AnalysisResult{}, err
	}
	return SampleResults[m.Pick(len(SampleResults))], nil
}
