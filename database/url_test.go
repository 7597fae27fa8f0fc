package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{
			name:     "no database name keeps the url",
			baseURL:  "postgres://u:p@localhost:5432/lotto",
			expected: "postgres://u:p@localhost:5432/lotto",
		},
		{
			name:     "appends name and sslmode",
			baseURL:  "postgres://u:p@localhost:5432",
			dbName:   "lotto",
			expected: "postgres://u:p@localhost:5432/lotto?sslmode=disable",
		},
		{
			name:     "trailing slash",
			baseURL:  "postgres://u:p@localhost:5432/",
			dbName:   "lotto",
			expected: "postgres://u:p@localhost:5432/lotto?sslmode=disable",
		},
		{
			name:     "existing query parameters",
			baseURL:  "postgres://u:p@db:5432?connect_timeout=5",
			dbName:   "lotto",
			expected: "postgres://u:p@db:5432/lotto?connect_timeout=5&sslmode=disable",
		},
		{
			name:     "existing sslmode",
			baseURL:  "postgres://u:p@db:5432/?sslmode=require",
			dbName:   "lotto",
			expected: "postgres://u:p@db:5432/lotto?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
