package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/seedling-labs/gratitude-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "some_constraint"}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil error", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("query: %w", sql.ErrNoRows), wantIs: store.ErrNotFound},
		{name: "unique violation", err: pgError(uniqueViolationCode), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: pgError(foreignKeyViolationCode), wantIs: store.ErrInvalidEntity},
		{name: "check violation", err: pgError(checkViolationCode), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: pgError(notNullViolationCode), wantIs: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantIs)
		})
	}
}

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	sentinel := errors.New("connection reset")
	assert.Same(t, sentinel, MapError(sentinel))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgError(uniqueViolationCode))))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrNotFound))
	assert.True(t, IsNotFoundError(store.ErrSurfaceNotFound))
	assert.False(t, IsNotFoundError(errors.New("other")))
}

func TestMapUniqueViolation(t *testing.T) {
	err := MapUniqueViolation(pgError(uniqueViolationCode), store.ErrSurfaceExists)
	assert.ErrorIs(t, err, store.ErrSurfaceExists)

	// Without a specific error the generic duplicate sentinel applies.
	err = MapUniqueViolation(pgError(uniqueViolationCode), nil)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	// Non-unique errors fall through to MapError.
	err = MapUniqueViolation(sql.ErrNoRows, store.ErrSurfaceExists)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
