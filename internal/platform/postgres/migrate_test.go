package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestegg/internal/platform/postgres/migrations"
)

func TestExtractUp(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", extractUp(content))
	assert.Equal(t, "SELECT 1;", extractUp("SELECT 1;"))
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := fs.ReadFile(migrations.FS, entries[0].Name())
	require.NoError(t, err)
	up := extractUp(string(content))
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS contributions")
	assert.Contains(t, up, "balance_snapshots_user_id_key")
	assert.NotContains(t, up, "DROP TABLE")
}
