package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindArgs(t *testing.T) {
	assert.Equal(t, []any{}, bindArgs(nil))
	assert.Equal(t, []any{"3", "%rome%"}, bindArgs([]string{"3", "%rome%"}))
}

func TestDBExec(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.raw.affected = 2

	out, err := executeCommand(t, nil, "db", "exec", "DELETE FROM labels WHERE content_id = ?", "3")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM labels WHERE content_id = ?", ts.raw.statement)
	assert.Equal(t, []any{"3"}, ts.raw.args)
	assert.Contains(t, out, "2 rows affected")
}

func TestDBExec_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.raw.err = assert.AnError

	_, err := executeCommand(t, nil, "db", "exec", "BROKEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exec failed")
}

func TestDBQuery(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.raw.rows = []map[string]any{
		{"title": "Rome", "id": int64(1)},
		{"title": "Carthage", "id": int64(2)},
	}

	out, err := executeCommand(t, nil, "db", "query", "SELECT id, title FROM contents")
	require.NoError(t, err)
	assert.Empty(t, ts.raw.args)
	assert.Contains(t, out, "id=1  title=Rome\n")
	assert.Contains(t, out, "id=2  title=Carthage\n")
	assert.Contains(t, out, "(2 rows)")
}

func TestDBQuery_NoRows(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, nil, "db", "query", "SELECT 1 WHERE 0")
	require.NoError(t, err)
	assert.Contains(t, out, "No rows.")
}

func TestDBQuery_JSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand(t, nil, "db", "query", "--json", "SELECT 1 WHERE 0")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))

	ts.raw.rows = []map[string]any{{"n": int64(5)}}
	out, err = executeCommand(t, nil, "db", "query", "--json", "SELECT 5 AS n")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []map[string]any{{"n": float64(5)}}, got)
}

func TestDB_NoStore(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	rawStore = nil

	_, err := executeCommand(t, nil, "db", "exec", "DELETE FROM labels")
	assert.EqualError(t, err, "database not configured")

	_, err = executeCommand(t, nil, "db", "query", "SELECT 1")
	assert.EqualError(t, err, "database not configured")
}
