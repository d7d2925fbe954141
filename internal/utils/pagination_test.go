// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB builds statements without a live connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestApplySort(t *testing.T) {
	allowed := []string{"created_at", "end_time", "starting_price"}

	tests := []struct {
		name      string
		params    PaginationParams
		wantOrder string
	}{
		{
			name:      "default newest first",
			params:    PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
			wantOrder: "ORDER BY created_at desc",
		},
		{
			name:      "allowed column ascending",
			params:    PaginationParams{Page: 1, Limit: 20, Sort: "end_time", Order: "asc"},
			wantOrder: "ORDER BY end_time asc",
		},
		{
			name:      "unknown column falls back to created_at",
			params:    PaginationParams{Page: 1, Limit: 20, Sort: "password_hash", Order: "desc"},
			wantOrder: "ORDER BY created_at desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dryRunDB(t)

			var rows []map[string]interface{}
			tx := ApplySort(db.Table("listings"), tt.params, allowed).Find(&rows)
			require.NoError(t, tx.Error)

			assert.Contains(t, tx.Statement.SQL.String(), tt.wantOrder)
		})
	}
}

func TestApplyPagination(t *testing.T) {
	db := dryRunDB(t)

	var rows []map[string]interface{}
	tx := ApplyPagination(db.Table("listings"), PaginationParams{Page: 3, Limit: 20}).Find(&rows)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.ElementsMatch(t, []interface{}{20, 40}, tx.Statement.Vars)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a", "b"}, 41, PaginationParams{Page: 1, Limit: 20})

	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
}
