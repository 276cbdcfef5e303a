package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsValidUUID(a))

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	assert.False(t, IsValidUUID("not-a-uuid"))
}
