package persistence

import (
	"testing"

	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"asc", "ASC"},
		{"  ASC ", "ASC"},
		{"desc", "DESC"},
		{"ASC; DROP TABLE quotes;--", "DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty uses default", "", "created_at"},
		{"whitelisted", "final", "final"},
		{"trimmed", "  delivery_date ", "delivery_date"},
		{"case sensitive", "FINAL", "created_at"},
		{"unknown column", "client_name", "created_at"},
		{"injection", "number; DROP TABLE quotes;--", "created_at"},
		{"subquery", "id, (SELECT password_hash FROM users)", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, QuoteSortFields, "created_at"))
		})
	}
}

func TestSortWhitelists_AllowTimestamps(t *testing.T) {
	for name, whitelist := range map[string]map[string]bool{
		"quotes":            QuoteSortFields,
		"service_orders":    ServiceOrderSortFields,
		"production_orders": ProductionOrderSortFields,
		"entries":           EntrySortFields,
		"products":          ProductSortFields,
		"parties":           PartySortFields,
	} {
		for _, field := range []string{"id", "created_at", "updated_at"} {
			assert.True(t, whitelist[field], "%s should allow %s", name, field)
		}
	}
}

func TestApplyOrderAndPagination(t *testing.T) {
	db := newTestDB(t).Session(&gorm.Session{DryRun: true})

	t.Run("qualified order with id tie breaker", func(t *testing.T) {
		filter := shared.Filter{OrderBy: "due_date", OrderDir: "asc", Page: 3, PageSize: 20}
		var rows []models.ReceivableModel
		stmt := applyPagination(applyOrder(db.Model(&models.ReceivableModel{}), "receivables", filter, EntrySortFields, "created_at"), filter).
			Find(&rows).Statement

		sql := stmt.SQL.String()
		assert.Contains(t, sql, "ORDER BY receivables.due_date ASC,receivables.id ASC")
		assert.Regexp(t, `LIMIT (20|\?) OFFSET (40|\?)`, sql)
	})

	t.Run("rejected column falls back to default", func(t *testing.T) {
		filter := shared.Filter{OrderBy: "amount desc; --"}
		var rows []models.ReceivableModel
		stmt := applyPagination(applyOrder(db.Model(&models.ReceivableModel{}), "receivables", filter, EntrySortFields, "due_date"), filter).
			Find(&rows).Statement

		sql := stmt.SQL.String()
		assert.Contains(t, sql, "ORDER BY receivables.due_date DESC")
		assert.NotContains(t, sql, "LIMIT")
	})
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%cartão%", likePattern("  Cartão "))
}
