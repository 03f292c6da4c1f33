// Package search keeps an Elasticsearch index of players for full-text lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/nba_api/internal/models"
)

const DefaultIndex = "players"

var playersMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":         map[string]any{"type": "long"},
			"name":       map[string]any{"type": "text"},
			"team":       map[string]any{"type": "text"},
			"position":   map[string]any{"type": "keyword"},
			"height_m":   map[string]any{"type": "float"},
			"weight_kg":  map[string]any{"type": "float"},
			"birth_date": map[string]any{"type": "date"},
		},
	},
}

// NewClient connects and checks the node answers before returning.
func NewClient(ctx context.Context, url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, responseError("info", res.StatusCode, res.Body)
	}
	return client, nil
}

type PlayerIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewPlayerIndex(es *elasticsearch.Client, index string) *PlayerIndex {
	if index == "" {
		index = DefaultIndex
	}
	return &PlayerIndex{es: es, index: index}
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (p *PlayerIndex) EnsureIndex(ctx context.Context) error {
	res, err := p.es.Indices.Exists([]string{p.index}, p.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return responseError("exists", res.StatusCode, http.NoBody)
	}

	body, err := encode(playersMapping)
	if err != nil {
		return err
	}
	res, err = p.es.Indices.Create(p.index,
		p.es.Indices.Create.WithContext(ctx),
		p.es.Indices.Create.WithBody(body),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res.StatusCode, res.Body)
	}
	return nil
}

func (p *PlayerIndex) IndexPlayer(ctx context.Context, pl *models.Player) error {
	body, err := encode(pl)
	if err != nil {
		return err
	}
	res, err := p.es.Index(p.index, body,
		p.es.Index.WithContext(ctx),
		p.es.Index.WithDocumentID(strconv.FormatUint(uint64(pl.ID), 10)),
		p.es.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.StatusCode, res.Body)
	}
	return nil
}

// DeletePlayer treats a missing document as already deleted.
func (p *PlayerIndex) DeletePlayer(ctx context.Context, id uint) error {
	res, err := p.es.Delete(p.index, strconv.FormatUint(uint64(id), 10),
		p.es.Delete.WithContext(ctx),
		p.es.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res.StatusCode, res.Body)
	}
	return nil
}

func (p *PlayerIndex) SearchPlayers(ctx context.Context, q string, offset, limit int) (int64, []models.Player, error) {
	body, err := encode(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "team", "position"},
				"fuzziness": "AUTO",
			},
		},
		"from": offset,
		"size": limit,
	})
	if err != nil {
		return 0, nil, err
	}

	res, err := p.es.Search(
		p.es.Search.WithContext(ctx),
		p.es.Search.WithIndex(p.index),
		p.es.Search.WithBody(body),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res.StatusCode, res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Player `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: decode search: %w", err)
	}

	players := make([]models.Player, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		players[i] = hit.Source
	}
	return r.Hits.Total.Value, players, nil
}

func encode(v any) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("elasticsearch: encode: %w", err)
	}
	return &buf, nil
}

func responseError(op string, status int, body io.Reader) error {
	msg, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("elasticsearch: %s: status %d: %s", op, status, bytes.TrimSpace(msg))
}
