package sweetrepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	apperror "sweetshop/internal/errors"
	"sweetshop/internal/pkg/logger"
)

func TestTranslateWriteError(t *testing.T) {
	r := &SweetRepository{logger: logger.NewNop()}

	checkErr := fmt.Errorf("exec: %w", &pq.Error{Code: pgCheckViolation, Constraint: "sweets_quantity_non_negative"})
	var vErr *apperror.ValidationError
	assert.ErrorAs(t, r.translateWriteError("Falha ao atualizar doce", checkErr), &vErr)

	driverErr := errors.New("conexão recusada")
	var iErr *apperror.InternalError
	err := r.translateWriteError("Falha ao atualizar doce", driverErr)
	assert.ErrorAs(t, err, &iErr)
	assert.ErrorIs(t, err, driverErr)
}

func TestIsInvalidUUID(t *testing.T) {
	assert.True(t, isInvalidUUID(&pq.Error{Code: pgInvalidTextRepr}))
	assert.False(t, isInvalidUUID(&pq.Error{Code: pgCheckViolation}))
	assert.False(t, isInvalidUUID(errors.New("outro")))
	assert.False(t, isInvalidUUID(nil))
}
