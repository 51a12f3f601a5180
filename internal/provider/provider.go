// Package provider defines the external services the screens depend on
// (speech-to-text, advisory answers, crop image classification, market
// prices and the scheme directory) together with mock and catalog-backed
// implementations.
package provider

import (
	"context"

	"kisan/internal/model"
)

// TranscribeRequest carries captured audio. Audio may be empty for the mock.
type TranscribeRequest struct {
	ID    string
	Audio []byte
}

// AnswerRequest carries a farmer's question.
type AnswerRequest struct {
	ID         string
	Transcript string
}

// ClassifyRequest carries an image to classify.
type ClassifyRequest struct {
	ID    string
	Image []byte
}

// SpeechToText turns captured audio into text. Cancelling ctx aborts capture.
type SpeechToText interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (string, error)
}

// Advisor answers a farming question.
type Advisor interface {
	Answer(ctx context.Context, req AnswerRequest) (string, error)
}

// Classifier detects crop diseases in an image.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (model.AnalysisResult, error)
}

// MarketPrices returns the current price table for a mandi location.
type MarketPrices interface {
	Prices(ctx context.Context, location string) (model.PriceTable, error)
}

// SchemeDirectory returns the government scheme catalog.
type SchemeDirectory interface {
	Schemes(ctx context.Context) ([]model.Scheme, error)
}

// Services bundles every provider a screen may call, plus the call policy.
type Services struct {
	Speech  SpeechToText
	Advisor Advisor
	Vision  Classifier
	Market  MarketPrices
	Schemes SchemeDirectory
	Policy  Policy
}
