// Package surrealstore implements [docstore.Backend] on SurrealDB.
//
// Each collection is a SurrealDB table and each document a record whose
// record id key is the document id, so "courses/logic-101" is stored as
// courses:⟨logic-101⟩. Tables are schemaless and created on first write.
//
//	store, err := surrealstore.Open(ctx, surrealstore.Config{
//		URL:       "ws://localhost:8000",
//		Namespace: "academy",
//		Database:  "site",
//		Username:  "root",
//		Password:  "root",
//	})
package surrealstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/colorbulb/nexteliteweb2/pkg/docstore"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Store is a docstore.Backend backed by a SurrealDB connection.
type Store struct {
	db *surrealdb.DB
}

var _ docstore.Backend = (*Store)(nil)

// Open connects, signs in when credentials are set and selects the
// namespace and database.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if cfg.Username != "" && cfg.Password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": cfg.Username,
			"pass": cfg.Password,
		}); err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}

func (s *Store) List(ctx context.Context, coll models.Collection) ([]docstore.Document, error) {
	results, err := surrealdb.Query[[]map[string]any](ctx, s.db,
		"SELECT * FROM type::table($tb) ORDER BY id",
		map[string]any{"tb": coll.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", coll, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	rows := (*results)[0].Result
	docs := make([]docstore.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := toDocument(row)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", coll, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, coll models.Collection, id string) (docstore.Document, error) {
	row, err := surrealdb.Select[map[string]any](ctx, s.db, recordID(coll, id))
	if err = handleNotFound(err); err != nil {
		return docstore.Document{}, fmt.Errorf("failed to select %s/%s: %w", coll, id, err)
	}
	if row == nil || len(*row) == 0 {
		return docstore.Document{}, docstore.ErrNotFound
	}
	doc, err := toDocument(*row)
	if err != nil {
		return docstore.Document{}, err
	}
	doc.ID = id
	return doc, nil
}

func (s *Store) Put(ctx context.Context, coll models.Collection, id string, fields map[string]any) error {
	if _, err := surrealdb.Upsert[map[string]any](ctx, s.db, recordID(coll, id), withoutID(fields)); err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", coll, id, err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, coll models.Collection, fields map[string]any) (string, error) {
	row, err := surrealdb.Create[map[string]any](ctx, s.db, surrealmodels.Table(coll.String()), withoutID(fields))
	if err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", coll, err)
	}
	if row == nil {
		return "", fmt.Errorf("create on %s returned no record", coll)
	}
	id, ok := recordKey((*row)["id"])
	if !ok {
		return "", fmt.Errorf("create on %s returned record without id", coll)
	}
	return id, nil
}

func (s *Store) Delete(ctx context.Context, coll models.Collection, id string) error {
	if _, err := surrealdb.Delete[map[string]any](ctx, s.db, recordID(coll, id)); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", coll, id, err)
	}
	return nil
}

func recordID(coll models.Collection, id string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(coll.String(), id)
}

// handleNotFound maps the SDK's empty-result decode errors to success so the
// caller can check for an empty row instead.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

func toDocument(row map[string]any) (docstore.Document, error) {
	id, ok := recordKey(row["id"])
	if !ok {
		return docstore.Document{}, fmt.Errorf("record has no usable id: %v", row["id"])
	}
	fields := make(map[string]any, len(row))
	for k, v := range row {
		if k == "id" {
			continue
		}
		fields[k] = normalize(v)
	}
	return docstore.Document{ID: id, Fields: fields}, nil
}

func withoutID(fields map[string]any) map[string]any {
	if _, ok := fields["id"]; !ok {
		return fields
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != "id" {
			out[k] = v
		}
	}
	return out
}

// recordKey extracts the key part of a record id.
func recordKey(v any) (string, bool) {
	switch id := v.(type) {
	case surrealmodels.RecordID:
		return fmt.Sprint(id.ID), true
	case *surrealmodels.RecordID:
		if id == nil {
			return "", false
		}
		return fmt.Sprint(id.ID), true
	case string:
		if i := strings.IndexByte(id, ':'); i >= 0 {
			id = id[i+1:]
		}
		return strings.Trim(id, "⟨⟩`"), id != ""
	}
	return "", false
}

// normalize converts CBOR-decoded generic maps into JSON-friendly values.
func normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
