package warehouse

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUndefinedTable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "postgres undefined_table code",
			err:  &pq.Error{Code: "42P01"},
			want: true,
		},
		{
			name: "other postgres code",
			err:  &pq.Error{Code: "23505"},
			want: false,
		},
		{
			name: "plain error with matching text",
			err:  errors.New(`relation "nutrition_limits" does not exist`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUndefinedTable(tt.err))
		})
	}
}

func TestNewWithDB(t *testing.T) {
	// sql.Open does not dial, so this stays offline.
	db, err := sql.Open("postgres", "postgres://localhost:5432/catalog?sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	store := NewWithDB(db)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())
}
