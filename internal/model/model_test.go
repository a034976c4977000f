package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromBool(t *testing.T) {
	assert.Equal(t, ValidationStatusValid, StatusFromBool(true))
	assert.Equal(t, ValidationStatusNotValid, StatusFromBool(false))
	assert.True(t, ValidationStatusNotValid.IsKnown())
	assert.False(t, ValidationStatus("NOT_VALID").IsKnown())
}

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse[IbanCheck](nil, 2, 10, 21)

	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.TotalPages)

	page = NewPaginatedResponse([]IbanCheck{{ID: 1}}, 1, 10, 0)
	assert.Equal(t, 0, page.TotalPages)
}
