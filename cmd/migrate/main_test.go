package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE widgets (id SERIAL PRIMARY KEY);

-- +migrate Down
DROP TABLE widgets;
`

func TestExtractMigrationPart(t *testing.T) {
	up := extractMigrationPart(sampleMigration, "Up")
	assert.Contains(t, up, "CREATE TABLE widgets")
	assert.NotContains(t, up, "DROP TABLE")

	down := extractMigrationPart(sampleMigration, "Down")
	assert.Contains(t, down, "DROP TABLE widgets")
	assert.NotContains(t, down, "CREATE TABLE")
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	dir := t.TempDir()
	file := writeMigration(t, dir, "0001_widgets.sql", sampleMigration)

	t.Run("Applies pending migration and records version", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("0001_widgets.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE widgets").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("0001_widgets.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = runMigrationsUp(db, []string{file})
		assert.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips already applied migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("0001_widgets.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = runMigrationsUp(db, []string{file})
		assert.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunMigrationsDown(t *testing.T) {
	dir := t.TempDir()
	file := writeMigration(t, dir, "0001_widgets.sql", sampleMigration)

	t.Run("Rolls back last applied migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_widgets.sql"))
		mock.ExpectExec("DROP TABLE widgets").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("0001_widgets.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = runMigrationsDown(db, []string{file})
		assert.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing to roll back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		err = runMigrationsDown(db, []string{file})
		assert.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing migration file", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0002_missing.sql"))

		err = runMigrationsDown(db, []string{file})
		assert.Error(t, err)
	})
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = run(db, "sideways", t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
