package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexRequest struct {
	ID    string `validate:"required"`
	Name  string `validate:"required,min=1"`
	Price int64  `validate:"gte=0"`
}

func TestValidate_Passes(t *testing.T) {
	err := Validate(indexRequest{ID: "p-1", Name: "Widget", Price: 100})
	assert.NoError(t, err)
}

func TestValidate_ReturnsFieldErrors(t *testing.T) {
	err := Validate(indexRequest{Price: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["ID"])
	assert.Equal(t, "is required", fields["Name"])
	assert.Contains(t, fields["Price"], "greater than or equal to 0")
	assert.Contains(t, valErr.Error(), "field 'ID'")
}
