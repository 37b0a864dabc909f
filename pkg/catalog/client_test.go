package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestNewClient_RejectsMalformedURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestClient_FetchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "title": "USB Cable", "price": 9.99, "category": "electronics",
			 "image": "https://example.com/1.jpg", "rating": {"rate": 4.1, "count": 120}},
			{"id": 2, "title": "Gold Ring", "price": 120, "category": "jewelery"}
		]`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "USB Cable", products[0].Title)
	require.NotNil(t, products[0].Rating)
	assert.Equal(t, 4.1, products[0].Rating.Rate)
	assert.Nil(t, products[1].Rating)
}

func TestClient_FetchProducts_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchProducts(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestClient_FetchProducts_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.FetchProducts(context.Background())
	assert.ErrorIs(t, err, ErrMalformedFeed)
}

func TestClient_FetchProducts_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, FetchTimeout: time.Second})
	require.NoError(t, err)

	_, err = client.FetchProducts(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnreachable)
}

func TestClient_FetchProducts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.FetchProducts(ctx)
	assert.ErrorIs(t, err, ErrFeedUnreachable)
}
