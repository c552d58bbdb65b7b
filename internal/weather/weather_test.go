package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "london", r.URL.Query().Get("q"))
		assert.Equal(t, "k", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"weather":[{"description":"light rain"}],"main":{"temp":12.3,"feels_like":10.9}}`))
	}))
	defer srv.Close()

	c := New("k", srv.Client())
	c.baseURL = srv.URL

	got, err := c.Current(context.Background(), "london")
	require.NoError(t, err)
	assert.Equal(t, "Weather in london: light rain. Temperature 12.3 degrees, feels like 10.9 degrees.", got)
}

func TestCurrent_MissingKey(t *testing.T) {
	c := New("", nil)
	_, err := c.Current(context.Background(), "london")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestCurrent_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "city not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New("k", srv.Client())
	c.baseURL = srv.URL

	_, err := c.Current(context.Background(), "atlantis")
	assert.Error(t, err)
}
