package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Resolve(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "12 Main Street", r.URL.Query().Get("q"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"display_name":"12 Main Street, Springfield","address":{"postcode":"49007"}}]`))
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL)
		got, err := client.Resolve(context.Background(), "12 Main Street")
		require.NoError(t, err)
		assert.Equal(t, "12 Main Street, Springfield", got.FormattedAddress)
		assert.Equal(t, "49007", got.PostalCode)
	})

	t.Run("no match is a Failure value", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL)
		got, err := client.Resolve(context.Background(), "nowhere at all")
		assert.Nil(t, got)

		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Contains(t, f.Message, "no match")
	})

	t.Run("provider error is a Failure value", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL)
		_, err := client.Resolve(context.Background(), "12 Main Street")

		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Contains(t, f.Message, "503")
	})
}

func TestNominatimClient_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "42.29", r.URL.Query().Get("lat"))
		_, _ = w.Write([]byte(`{"display_name":"Kalamazoo, MI","address":{"postcode":"49007"}}`))
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL)
	got, err := client.Reverse(context.Background(), 42.29, -85.58)
	require.NoError(t, err)
	assert.Equal(t, "Kalamazoo, MI", got.FormattedAddress)
}
