package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Wraps error with context", func(t *testing.T) {
		base := errors.New("connection refused")
		err := NewError("open database", base)

		require.Error(t, err, "Expected NewError to return an error")
		assert.Contains(t, err.Error(), "open database", "Expected error to contain the context")
		assert.Contains(t, err.Error(), "connection refused", "Expected error to contain the base error")
		assert.ErrorIs(t, err, base, "Expected wrapped error to unwrap to the base error")
	})
}

func TestNewDatabaseConfiguration(t *testing.T) {
	t.Run("Reads configuration from environment", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")

		config, err := NewDatabaseConfiguration()

		require.NoError(t, err, "Expected configuration to be created from environment")
		assert.Equal(t, "localhost", config.Host, "Expected host from environment")
		assert.Equal(t, "5432", config.Port, "Expected port from environment")
		assert.Equal(t, "database", config.Database, "Expected database name from environment")
		assert.Equal(t, "public", config.Schema, "Expected default schema")
		assert.Equal(t, "disable", config.SSLMode, "Expected default sslmode")
	})

	t.Run("Reports missing variables", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PASSWORD", "")

		_, err := NewDatabaseConfiguration()

		require.Error(t, err, "Expected an error for missing environment variables")
		assert.Contains(t, err.Error(), "DB_HOST", "Expected error to name the missing host variable")
		assert.Contains(t, err.Error(), "DB_PASSWORD", "Expected error to name the missing password variable")
	})

	t.Run("Builds connection string", func(t *testing.T) {
		config := &DatabaseConfiguration{
			Host:     "localhost",
			Port:     "5432",
			Database: "database",
			Username: "user",
			Password: "password",
			Schema:   "public",
			SSLMode:  "disable",
		}

		connStr := config.ConnectionString()

		assert.Contains(t, connStr, "host=localhost", "Expected connection string to contain host")
		assert.Contains(t, connStr, "port=5432", "Expected connection string to contain port")
		assert.Contains(t, connStr, "dbname=database", "Expected connection string to contain database")
		assert.Contains(t, connStr, "sslmode=disable", "Expected connection string to contain sslmode")
	})
}
