package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func embedTestProvider(t *testing.T, got *map[string]any) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]}]}`))
	}))
	t.Cleanup(srv.Close)
	return &OpenAIProvider{apiKey: "test-key", baseURL: srv.URL, client: srv.Client()}
}

func TestOpenAIEmbedSendsConfiguredDimension(t *testing.T) {
	var got map[string]any
	p := embedTestProvider(t, &got)

	vectors, _, err := p.Embed(context.Background(), EmbedRequest{Inputs: []string{"segment"}, Dimension: 768})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	require.Equal(t, float64(768), got["dimensions"])
}

func TestOpenAIEmbedOmitsDimensionWhenUnset(t *testing.T) {
	var got map[string]any
	p := embedTestProvider(t, &got)

	_, _, err := p.Embed(context.Background(), EmbedRequest{Inputs: []string{"segment"}})
	require.NoError(t, err)
	_, present := got["dimensions"]
	require.False(t, present)
}
