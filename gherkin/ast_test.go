package gherkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_KeysAndHashes(t *testing.T) {
	table := &Table{Rows: [][]string{
		{"name", "role"},
		{"alice", "admin"},
		{"bob", "viewer"},
	}}

	assert.Equal(t, []string{"name", "role"}, table.Keys())

	hashes := table.Hashes()
	require.Len(t, hashes, 2)
	assert.Equal(t, map[string]string{"name": "alice", "role": "admin"}, hashes[0])
	assert.Equal(t, map[string]string{"name": "bob", "role": "viewer"}, hashes[1])
}

func TestTable_HashesHeaderOnly(t *testing.T) {
	table := &Table{Rows: [][]string{{"name"}}}
	assert.Empty(t, table.Hashes())
}

func TestStatement_Sentence(t *testing.T) {
	stmt := &Statement{Keyword: "Given", Text: "a thing"}
	assert.Equal(t, "a thing", stmt.Sentence())
}
