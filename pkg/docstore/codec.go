package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

const idField = "id"

// Encode converts a record into a Document, moving its "id" field (if any)
// into Document.ID.
func Encode(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, fmt.Errorf("%T does not encode to an object: %w", v, err)
	}
	doc := Document{Fields: fields}
	if id, ok := fields[idField].(string); ok {
		doc.ID = id
	}
	delete(fields, idField)
	return doc, nil
}

// EncodeAll encodes each record in order.
func EncodeAll[T any](records []T) ([]Document, error) {
	docs := make([]Document, 0, len(records))
	for _, r := range records {
		doc, err := Encode(r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Decode converts a Document into T with the "id" field set from doc.ID.
func Decode[T any](doc Document) (T, error) {
	fields := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		fields[k] = v
	}
	fields[idField] = doc.ID
	return decodeFields[T](fields)
}

func decodeFields[T any](fields map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode %T: %w", out, err)
	}
	return out, nil
}

// List reads coll and decodes every document into T. Documents that fail to
// decode are logged and skipped.
func List[T any](ctx context.Context, c *Client, coll models.Collection) []T {
	docs := c.ListAll(ctx, coll)
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			c.log.Warn().Err(err).Str("collection", coll.String()).Str("id", doc.ID).Msg("skipping undecodable document")
			continue
		}
		out = append(out, v)
	}
	return out
}

// Singleton reads and decodes the singleton of coll. The id is not injected.
func Singleton[T any](ctx context.Context, c *Client, coll models.Collection) (T, bool) {
	var zero T
	doc, ok := c.GetSingleton(ctx, coll)
	if !ok {
		return zero, false
	}
	v, err := decodeFields[T](doc.Fields)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", coll.String()).Msg("undecodable singleton, treating as absent")
		return zero, false
	}
	return v, true
}

// Put encodes v and upserts it into coll.
func Put(ctx context.Context, c *Client, coll models.Collection, v any) (string, error) {
	doc, err := Encode(v)
	if err != nil {
		return "", err
	}
	return c.Upsert(ctx, coll, doc)
}

// Replace encodes records and replaces the whole collection with them.
func Replace[T any](ctx context.Context, c *Client, coll models.Collection, records []T) error {
	docs, err := EncodeAll(records)
	if err != nil {
		return err
	}
	return c.ReplaceCollection(ctx, coll, docs)
}

// SetValue encodes v and overwrites the singleton of coll with it.
func SetValue(ctx context.Context, c *Client, coll models.Collection, v any) error {
	doc, err := Encode(v)
	if err != nil {
		return err
	}
	return c.SetSingleton(ctx, coll, doc.Fields)
}
