package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidelab/pathclient/internal/domain"
	"github.com/slidelab/pathclient/pkg/ctxutil"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewWithHTTPClient(srv.URL, srv.Client(), log)
	require.NoError(t, err)
	return client
}

func TestClient_Get_DecodesEnvelope(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workspaces", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"data": [{"id": "ws-1"}, {"id": "ws-2"}]}`))
	})

	var env struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, client.Get(context.Background(), "/workspaces", nil, &env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "ws-1", env.Data[0].ID)
}

func TestClient_ForwardsAuthAndRequestID(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "u-7", r.Header.Get("X-Actor-ID"))
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := ctxutil.WithAccessToken(context.Background(), "token-123")
	ctx = ctxutil.WithRequestID(ctx, "req-42")
	ctx = ctxutil.WithActorID(ctx, "u-7")
	require.NoError(t, client.Get(ctx, "/ping", nil, nil))
}

func TestClient_OmitsActorHeaderWithoutActor(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Actor-ID"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Get(context.Background(), "/ping", nil, nil))
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Tumor", body["name"])

		_, _ = w.Write([]byte(`{"data": {"id": "at-1"}}`))
	})

	body := map[string]string{"name": "Tumor"}
	var env struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, client.Post(context.Background(), "/annotation_types", body, &env))
	assert.Equal(t, "at-1", env.Data.ID)
}

func TestClient_ErrorStatusBecomesAPIError(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "workspace not found"}`))
	})

	err := client.Get(context.Background(), "/workspaces/missing", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNotFound, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "workspace not found", apiErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	err := client.Get(context.Background(), "/workspaces", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Empty(t, apiErr.Message)
}

func TestClient_ContextCancellationIsTimeoutOrNetwork(t *testing.T) {
	t.Parallel()

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.Get(ctx, "/workspaces", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, []ErrorKind{KindTimeout, KindNetwork}, apiErr.Kind)
}

func TestClient_JoinsBasePath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/workspaces", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewWithHTTPClient(srv.URL+"/api/v1/", srv.Client(), log)
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/workspaces", nil, nil))
}
