package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	db, err := Connect("file:database_connect_test?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.Equal(t, "sqlite", db.Dialector.Name())
}
