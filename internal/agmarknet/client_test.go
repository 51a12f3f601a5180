package agmarknet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kisan/internal/provider"
)

func TestPricesConvertsQuintalToKg(t *testing.T) {
	var gotKey, gotDistrict string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api-key")
		gotDistrict = r.URL.Query().Get("filters[district]")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":3,"records":[
			{"commodity":"Tomato","grade":"FAQ","modal_price":"2400"},
			{"commodity":"Tomato","grade":"FAQ","modal_price":"1800"},
			{"commodity":"Onion","grade":"FAQ","modal_price":"1450"},
			{"commodity":"Garlic","grade":"FAQ","modal_price":"n/a"}
		]}`))
	}))
	defer srv.Close()

	fixed := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	c := NewClient("test-key").WithBaseURL(srv.URL)
	c.now = func() time.Time { return fixed }

	table, err := c.Prices(context.Background(), "Pune")
	require.NoError(t, err)
	require.Equal(t, "test-key", gotKey)
	require.Equal(t, "Pune", gotDistrict)
	require.Equal(t, "Pune", table.Location)
	require.Equal(t, fixed, table.FetchedAt)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "Onion", table.Rows[0].Name)
	require.Equal(t, 15, table.Rows[0].Price)
	require.Equal(t, "Tomato", table.Rows[1].Name)
	require.Equal(t, 24, table.Rows[1].Price)
	require.Equal(t, "🍅", table.Rows[1].Emoji)
}

func TestPricesClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusTooManyRequests, provider.ErrRateLimited},
		{http.StatusBadRequest, provider.ErrInvalidInput},
		{http.StatusServiceUnavailable, provider.ErrUnavailable},
		{http.StatusGatewayTimeout, provider.ErrTimeout},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := NewClient("k").WithBaseURL(srv.URL).Prices(context.Background(), "Delhi")
		srv.Close()
		require.ErrorIs(t, err, tc.kind, "status %d", tc.status)
	}
}

func TestPricesRejectsUnknownLocation(t *testing.T) {
	_, err := NewClient("k").Prices(context.Background(), "Atlantis")
	require.ErrorIs(t, err, provider.ErrInvalidInput)
}

func TestPricesWithNoRecordsIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"records":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k").WithBaseURL(srv.URL).Prices(context.Background(), "Chennai")
	require.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestPricesFiltersByState(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("filters[state]"))
		_, _ = w.Write([]byte(`{"records":[{"commodity":"Onion","grade":"FAQ","modal_price":"1450"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient("k").WithBaseURL(srv.URL).Prices(context.Background(), "Bangalore")
	require.NoError(t, err)
	_, err = NewClient("k").WithBaseURL(srv.URL).WithState(" Karnataka ").Prices(context.Background(), "Bangalore")
	require.NoError(t, err)
	require.Equal(t, []string{"", "Karnataka"}, got)
}
