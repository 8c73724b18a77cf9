package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

// Client applies the read-swallowing, write-propagating error contract on top
// of a Backend.
type Client struct {
	backend Backend
	log     zerolog.Logger
}

func NewClient(backend Backend, log zerolog.Logger) *Client {
	return &Client{backend: backend, log: log}
}

// Backend returns the underlying backend.
func (c *Client) Backend() Backend {
	return c.backend
}

// ListAll returns the documents of coll, or nil when the read fails.
func (c *Client) ListAll(ctx context.Context, coll models.Collection) []Document {
	docs, err := c.backend.List(ctx, coll)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", coll.String()).Msg("list failed, treating collection as empty")
		return nil
	}
	return docs
}

// GetSingleton returns the singleton document of coll. It reports false both
// when the document is missing and when the read fails.
func (c *Client) GetSingleton(ctx context.Context, coll models.Collection) (Document, bool) {
	doc, err := c.backend.Get(ctx, coll, models.SingletonID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn().Err(err).Str("collection", coll.String()).Msg("singleton read failed, treating as absent")
		}
		return Document{}, false
	}
	return doc, true
}

// Upsert replaces or creates the document at doc.ID, or creates it under a
// new id when doc.ID is empty. It returns the document id.
func (c *Client) Upsert(ctx context.Context, coll models.Collection, doc Document) (string, error) {
	if doc.ID == "" {
		id, err := c.backend.Create(ctx, coll, doc.Fields)
		if err != nil {
			return "", fmt.Errorf("failed to create %s document: %w", coll, err)
		}
		return id, nil
	}
	if err := c.backend.Put(ctx, coll, doc.ID, doc.Fields); err != nil {
		return "", fmt.Errorf("failed to write %s/%s: %w", coll, doc.ID, err)
	}
	return doc.ID, nil
}

func (c *Client) DeleteByID(ctx context.Context, coll models.Collection, id string) error {
	if err := c.backend.Delete(ctx, coll, id); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", coll, id, err)
	}
	return nil
}

// ReplaceCollection deletes every document in coll and writes docs fresh.
func (c *Client) ReplaceCollection(ctx context.Context, coll models.Collection, docs []Document) error {
	existing, err := c.backend.List(ctx, coll)
	if err != nil {
		return fmt.Errorf("failed to list %s for replacement: %w", coll, err)
	}
	for _, doc := range existing {
		if err := c.backend.Delete(ctx, coll, doc.ID); err != nil {
			return fmt.Errorf("failed to clear %s/%s: %w", coll, doc.ID, err)
		}
	}
	for _, doc := range docs {
		if _, err := c.Upsert(ctx, coll, doc); err != nil {
			return err
		}
	}
	c.log.Debug().Str("collection", coll.String()).Int("deleted", len(existing)).Int("written", len(docs)).Msg("collection replaced")
	return nil
}

// SetSingleton overwrites the singleton document of coll.
func (c *Client) SetSingleton(ctx context.Context, coll models.Collection, fields map[string]any) error {
	if err := c.backend.Put(ctx, coll, models.SingletonID, fields); err != nil {
		return fmt.Errorf("failed to write %s singleton: %w", coll, err)
	}
	return nil
}
