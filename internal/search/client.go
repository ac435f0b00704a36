// Package search integrates the secondary full-text index of user records.
// The index is a denormalized, possibly-stale mirror of the primary store;
// readers must not treat it as authoritative.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"inkwell/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

// UserDocument is the subset of a user record kept in the search index.
// The password hash never leaves the primary store.
type UserDocument struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DocumentFromUser builds the indexable projection of a user.
func DocumentFromUser(u *models.User) UserDocument {
	return UserDocument{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Client talks to the Elasticsearch node holding the user index.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// NewClient creates a search client for the given node URL and index name.
func NewClient(node, index string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{node},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return &Client{es: es, index: index}, nil
}

// Ping checks reachability of the search node.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search node ping: %s", res.Status())
	}
	return nil
}

// EnsureIndex creates the user index with explicit mappings if it does not
// exist yet.
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index},
		c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"id":       {"type": "integer"},
				"username": {"type": "text"},
				"email":    {"type": "text"}
			}
		}
	}`
	created, err := c.es.Indices.Create(c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))))
	if err != nil {
		return err
	}
	defer created.Body.Close()
	if created.IsError() {
		return fmt.Errorf("create index %q: %s", c.index, created.Status())
	}
	return nil
}

// IndexUser writes (or overwrites) the document for a user.
func (c *Client) IndexUser(ctx context.Context, doc UserDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := c.es.Index(c.index, bytes.NewReader(body),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ID), 10)),
		c.es.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index user %d: %s", doc.ID, res.Status())
	}
	return nil
}

// DeleteUser removes the document for a user. A missing document is not an
// error; the retraction goal is already met.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	res, err := c.es.Delete(c.index, strconv.FormatUint(uint64(id), 10),
		c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete user %d: %s", id, res.Status())
	}
	return nil
}

// SearchUsers runs a fuzzy multi_match query over username and email.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]UserDocument, error) {
	if limit <= 0 {
		limit = 10
	}

	body, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"username", "email"},
				"fuzziness": "AUTO",
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]UserDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}
