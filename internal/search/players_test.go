package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nba_api/internal/models"
)

// fakeNode is a minimal in-memory stand-in for an Elasticsearch node.
type fakeNode struct {
	mu         sync.Mutex
	indexExist bool
	docs       map[string]models.Player
	lastSearch map[string]any
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"name":"fake","cluster_name":"test","version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case len(parts) == 1 && r.Method == http.MethodHead:
		if !f.indexExist {
			w.WriteHeader(http.StatusNotFound)
		}
	case len(parts) == 1 && r.Method == http.MethodPut:
		f.indexExist = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodPut:
		var p models.Player
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.docs[parts[2]] = p
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodDelete:
		if _, ok := f.docs[parts[2]]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, parts[2])
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case len(parts) == 2 && parts[1] == "_search":
		_ = json.NewDecoder(r.Body).Decode(&f.lastSearch)
		type hit struct {
			Source models.Player `json:"_source"`
		}
		var resp struct {
			Hits struct {
				Total struct {
					Value int64 `json:"value"`
				} `json:"total"`
				Hits []hit `json:"hits"`
			} `json:"hits"`
		}
		for _, d := range f.docs {
			resp.Hits.Hits = append(resp.Hits.Hits, hit{Source: d})
		}
		resp.Hits.Total.Value = int64(len(resp.Hits.Hits))
		_ = json.NewEncoder(w).Encode(resp)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func newTestIndex(t *testing.T) (*PlayerIndex, *fakeNode) {
	t.Helper()

	node := &fakeNode{docs: map[string]models.Player{}}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), srv.URL, "", "")
	require.NoError(t, err)
	return NewPlayerIndex(client, ""), node
}

func TestPlayerIndex_Lifecycle(t *testing.T) {
	t.Parallel()

	idx, node := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.EnsureIndex(ctx))
	assert.True(t, node.indexExist)
	require.NoError(t, idx.EnsureIndex(ctx))

	p := &models.Player{
		ID:        3,
		Name:      "Stephen Curry",
		Team:      "Golden State Warriors",
		Position:  "PG",
		HeightM:   1.88,
		WeightKg:  84,
		BirthDate: time.Date(1988, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, idx.IndexPlayer(ctx, p))
	assert.Equal(t, "Stephen Curry", node.docs["3"].Name)

	total, players, err := idx.SearchPlayers(ctx, "curry", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, players, 1)
	assert.Equal(t, uint(3), players[0].ID)

	assert.Equal(t, float64(10), node.lastSearch["size"])
	mm := node.lastSearch["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "curry", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])

	require.NoError(t, idx.DeletePlayer(ctx, 3))
	require.NoError(t, idx.DeletePlayer(ctx, 3))
	assert.Empty(t, node.docs)
}

func TestNewClient_FailsWhenNodeErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(context.Background(), srv.URL, "", "")
	assert.Error(t, err)
}
