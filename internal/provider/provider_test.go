package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kisan/internal/db"
	"kisan/internal/model"
)

func fixedPicker(i int) Picker {
	return func(n int) int { return i % n }
}

func fastPolicy() Policy {
	p := DefaultPolicy()
	p.Interval = time.Millisecond
	p.Timeout = time.Second
	return p
}

func TestCallRetriesUnavailable(t *testing.T) {
	calls := 0
	got, err := Call(context.Background(), fastPolicy(), "test", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &Error{Op: "test", Kind: ErrUnavailable}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 3, calls)
}

func TestCallDoesNotRetryInvalidInput(t *testing.T) {
	calls := 0
	_, err := Call(context.Background(), fastPolicy(), "test", func(context.Context) (int, error) {
		calls++
		return 0, Errorf("test", ErrInvalidInput, "bad image")
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Equal(t, 1, calls)
}

func TestCallGivesUpAfterRetries(t *testing.T) {
	calls := 0
	p := fastPolicy()
	p.Retries = 1
	_, err := Call(context.Background(), p, "test", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("connection refused")
	})
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, 2, calls)
}

func TestCallMapsAttemptDeadlineToTimeout(t *testing.T) {
	p := fastPolicy()
	p.Timeout = 5 * time.Millisecond
	_, err := Call(context.Background(), p, "test", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestCallReturnsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Call(ctx, fastPolicy(), "test", func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMockSpeechHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := MockSpeech{Delay: time.Hour, Pick: fixedPicker(0)}

	done := make(chan error, 1)
	go func() {
		_, err := s.Transcribe(ctx, TranscribeRequest{ID: "a"})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("transcribe did not return after cancel")
	}
}

func TestMocksPickFromFixedTables(t *testing.T) {
	ctx := context.Background()

	q, err := MockSpeech{Pick: fixedPicker(2)}.Transcribe(ctx, TranscribeRequest{})
	require.NoError(t, err)
	require.Equal(t, SampleQueries[2], q)

	a, err := MockAdvisor{Pick: fixedPicker(4)}.Answer(ctx, AnswerRequest{Transcript: q})
	require.NoError(t, err)
	require.Equal(t, SampleAnswers[4], a)

	r, err := MockClassifier{Pick: fixedPicker(2)}.Classify(ctx, ClassifyRequest{Image: []byte{1}})
	require.NoError(t, err)
	require.True(t, r.Healthy())
	require.False(t, r.NeedsTreatment())

	_, err = MockClassifier{Pick: fixedPicker(0)}.Classify(ctx, ClassifyRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRandomPickerStaysInRange(t *testing.T) {
	pick := RandomPicker(7)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := pick(len(SampleQueries))
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, len(SampleQueries))
		seen[n] = true
	}
	require.Len(t, seen, len(SampleQueries))
}

type flakyMarket struct {
	fail bool
}

func (f *flakyMarket) Prices(ctx context.Context, location string) (model.PriceTable, error) {
	if f.fail {
		return model.PriceTable{}, &Error{Op: "prices", Kind: ErrUnavailable}
	}
	return model.PriceTable{Location: location, Rows: db.DefaultPrices}, nil
}

func TestCachedMarketServesStaleOnFailure(t *testing.T) {
	up := &flakyMarket{}
	c := NewCachedMarket(up, time.Hour, nil)
	ctx := context.Background()

	fresh, err := c.Prices(ctx, "Delhi")
	require.NoError(t, err)
	require.False(t, fresh.Stale)

	up.fail = true
	stale, err := c.Prices(ctx, "Delhi")
	require.NoError(t, err)
	require.True(t, stale.Stale)
	require.Equal(t, fresh.Rows, stale.Rows)

	_, err = c.Prices(ctx, "Mumbai")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCatalogProviders(t *testing.T) {
	database, err := db.Open(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	ctx := context.Background()

	table, err := CatalogMarket{DB: database}.Prices(ctx, "Chennai")
	require.NoError(t, err)
	require.Equal(t, "Chennai", table.Location)
	require.Equal(t, db.DefaultPrices, table.Rows)

	_, err = CatalogMarket{DB: database}.Prices(ctx, "Nowhere")
	require.ErrorIs(t, err, ErrInvalidInput)

	schemes, err := CatalogSchemes{DB: database}.Schemes(ctx)
	require.NoError(t, err)
	require.Len(t, schemes, 5)
}

func TestUserMessageCoversEveryKind(t *testing.T) {
	for _, kind := range []error{ErrUnavailable, ErrInvalidInput, ErrTimeout, ErrRateLimited} {
		msg := UserMessage(&Error{Op: "x", Kind: kind})
		require.NotEmpty(t, msg)
		require.NotContains(t, msg, "x:")
	}
	require.Empty(t, UserMessage(nil))
}
