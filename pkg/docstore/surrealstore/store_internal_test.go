package surrealstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestRecordKey(t *testing.T) {
	cases := map[string]struct {
		in   any
		want string
		ok   bool
	}{
		"record id":         {surrealmodels.NewRecordID("courses", "logic-101"), "logic-101", true},
		"record id pointer": {&surrealmodels.RecordID{Table: "team", ID: "1"}, "1", true},
		"string form":       {"courses:⟨logic-101⟩", "logic-101", true},
		"bare string":       {"abc", "abc", true},
		"missing":           {nil, "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := recordKey(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToDocumentNormalizesNestedMaps(t *testing.T) {
	row := map[string]any{
		"id":    surrealmodels.NewRecordID("courses", "c1"),
		"title": "Logic",
		"preview": map[any]any{
			"type":     "quiz",
			"quizData": []any{map[any]any{"question": "q"}},
		},
	}
	doc, err := toDocument(row)
	assert.NoError(t, err)
	assert.Equal(t, "c1", doc.ID)
	assert.NotContains(t, doc.Fields, "id")

	preview, ok := doc.Fields["preview"].(map[string]any)
	assert.True(t, ok)
	questions := preview["quizData"].([]any)
	assert.Equal(t, map[string]any{"question": "q"}, questions[0])
}

func TestWithoutID(t *testing.T) {
	in := map[string]any{"id": "x", "name": "Ann"}
	assert.Equal(t, map[string]any{"name": "Ann"}, withoutID(in))
	assert.Contains(t, in, "id")
}
