package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert college: %w", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "colleges_pkey"})
	fk := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "programs_college_code_fkey"}
	check := &pgconn.PgError{Code: CheckViolation}
	plain := errors.New("connection reset")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))
	assert.True(t, IsDuplicateConstraintError(unique, "colleges_pkey"))
	assert.False(t, IsDuplicateConstraintError(unique, "users_email_key"))
	assert.Equal(t, "programs_college_code_fkey", ConstraintName(fk))

	assert.False(t, IsUniqueViolation(plain))
	assert.Empty(t, ConstraintName(plain))
}
