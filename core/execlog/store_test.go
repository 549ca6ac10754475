package execlog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/core/execlog"
)

func testStores(t *testing.T) map[string]execlog.Store {
	dir := t.TempDir()
	jsonl, err := execlog.NewJSONLStore(filepath.Join(dir, "run.jsonl"))
	require.NoError(t, err)
	sqlite, err := execlog.NewSQLiteStore(filepath.Join(dir, "run.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = jsonl.Close()
		_ = sqlite.Close()
	})
	return map[string]execlog.Store{"jsonl": jsonl, "sqlite": sqlite}
}

func TestStore_AppendAndQuery(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			rec := execlog.Record{RunID: "run-1", AGVID: "AGV-1", From: 1, To: 2, TimeMinutes: 5, Load: 3.5, PayloadIDs: []string{"P1"}, Line: "AGV-1-1-2-08:05-3.5-P1"}
			require.NoError(t, store.Append(ctx, rec))

			out, err := store.Query(ctx, execlog.Query{RunID: "run-1"})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "AGV-1", out[0].AGVID)
			assert.Equal(t, 2, out[0].To)
		})
	}
}

func TestStore_QueryFiltersByAGV(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Append(ctx, execlog.Record{RunID: "run-1", AGVID: "AGV-1", TimeMinutes: 1}))
			require.NoError(t, store.Append(ctx, execlog.Record{RunID: "run-1", AGVID: "AGV-2", TimeMinutes: 2}))

			out, err := store.Query(ctx, execlog.Query{RunID: "run-1", AGVID: "AGV-2"})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, "AGV-2", out[0].AGVID)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := execlog.Open("csv", "x")
	assert.Error(t, err)
}
