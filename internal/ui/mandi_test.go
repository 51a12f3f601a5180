package ui

import (
	"context"
	"testing"
	"time"

	"kisan/internal/db"
	"kisan/internal/model"
	"kisan/internal/provider"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

type marketFunc func(ctx context.Context, location string) (model.PriceTable, error)

func (f marketFunc) Prices(ctx context.Context, location string) (model.PriceTable, error) {
	return f(ctx, location)
}

func TestMandiInitLoadsDefaultLocation(t *testing.T) {
	v := NewMandiModel(testDeps(t))
	require.Equal(t, model.DefaultLocation, v.State().Location)

	cmd := v.Init()
	require.True(t, v.State().Refreshing)
	drain(t, v, cmd)

	require.False(t, v.State().Refreshing)
	require.Equal(t, "Bangalore", v.Table().Location)
	require.Len(t, v.Rows(), len(db.DefaultPrices))
	require.Empty(t, v.Err())

	out := ansi.Strip(v.View(120, 40))
	require.Contains(t, out, "Bangalore Market")
	require.Contains(t, out, "Tomato")
	require.Contains(t, out, "Saturday, 17 October 2026")
	require.Contains(t, out, "Best Selling Opportunity")
}

func TestMandiSupersededRefreshIsDropped(t *testing.T) {
	var calls []string
	deps := testDeps(t)
	deps.Services.Market = marketFunc(func(_ context.Context, location string) (model.PriceTable, error) {
		calls = append(calls, location)
		return model.PriceTable{Location: location, Rows: db.DefaultPrices[:len(calls)]}, nil
	})
	v := NewMandiModel(deps)

	first := v.Refresh()
	second := v.SetLocation("Delhi")
	require.NotNil(t, second)

	drain(t, v, first)
	require.Empty(t, v.Table().Location, "result of the first refresh must be ignored")
	require.True(t, v.State().Refreshing)

	drain(t, v, second)
	require.Equal(t, "Delhi", v.Table().Location)
	require.False(t, v.State().Refreshing)
}

func TestMandiSetLocation(t *testing.T) {
	v := NewMandiModel(testDeps(t))
	drain(t, v, v.Init())

	require.Nil(t, v.SetLocation("Bangalore"), "same location is a no-op")
	require.Nil(t, v.SetLocation("Atlantis"))
	require.NotEmpty(t, v.Err())
	require.Equal(t, "Bangalore", v.State().Location)

	drain(t, v, v.SetLocation("Chennai"))
	require.Equal(t, "Chennai", v.Table().Location)
	require.Empty(t, v.Err())
}

func TestMandiCycleLocationWraps(t *testing.T) {
	v := NewMandiModel(testDeps(t))
	drain(t, v, v.Update(keyPress("[")))
	require.Equal(t, "Pune", v.State().Location)

	drain(t, v, v.Update(keyPress("]")))
	require.Equal(t, "Bangalore", v.State().Location)
	drain(t, v, v.Update(keyPress("]")))
	require.Equal(t, "Mumbai", v.State().Location)
}

func TestNearestLocation(t *testing.T) {
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"hyderbad", "Hyderabad", true},
		{"mum", "Mumbai", true},
		{"  PUNE ", "Pune", true},
		{"chenai", "Chennai", true},
		{"xyz", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := nearestLocation(tc.query)
		require.Equal(t, tc.ok, ok, tc.query)
		require.Equal(t, tc.want, got, tc.query)
	}
}

func TestMandiFindCityPrompt(t *testing.T) {
	v := NewMandiModel(testDeps(t))
	v.Update(keyPress("l"))
	require.True(t, v.Capturing())
	for _, r := range "delhii" {
		v.Update(keyPress(string(r)))
	}
	drain(t, v, v.Update(keyPress("enter")))
	require.False(t, v.Capturing())
	require.Equal(t, "Delhi", v.State().Location)
	require.Equal(t, "Delhi", v.Table().Location)
}

func TestMandiSortByColumn(t *testing.T) {
	v := NewMandiModel(testDeps(t))
	drain(t, v, v.Init())

	v.Update(keyPress("tab"))
	v.Update(keyPress("S"))
	require.Equal(t, "Chili", v.Rows()[0].Name)
	require.Equal(t, "Cabbage", v.Rows()[len(v.Rows())-1].Name)

	v.Update(keyPress("tab"))
	v.Update(keyPress("s"))
	require.Equal(t, "Onion", v.Rows()[0].Name, "largest fall first when sorting change ascending")

	// Sorting reorders the view only.
	require.Equal(t, db.DefaultPrices[0].Name, v.Table().Rows[0].Name)
}

func TestMandiShowsStaleBanner(t *testing.T) {
	fetched := time.Date(2026, 10, 17, 7, 30, 0, 0, time.UTC)
	deps := testDeps(t)
	deps.Services.Market = marketFunc(func(_ context.Context, location string) (model.PriceTable, error) {
		return model.PriceTable{Location: location, Rows: db.DefaultPrices, FetchedAt: fetched, Stale: true}, nil
	})
	v := NewMandiModel(deps)
	drain(t, v, v.Init())

	out := ansi.Strip(v.View(140, 40))
	require.Contains(t, out, "Showing last known prices from")
	require.Contains(t, out, "Live prices are unavailable.")
}

func TestMandiProviderError(t *testing.T) {
	deps := testDeps(t)
	deps.Services.Market = marketFunc(func(context.Context, string) (model.PriceTable, error) {
		return model.PriceTable{}, provider.Errorf("prices", provider.ErrInvalidInput, "bad mandi")
	})
	v := NewMandiModel(deps)
	drain(t, v, v.Init())
	require.False(t, v.State().Refreshing)
	require.Equal(t, provider.UserMessage(provider.ErrInvalidInput), v.Err())
}
