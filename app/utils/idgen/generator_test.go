package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureID(t *testing.T) {
	id, err := GenerateSecureID("leave", 16)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "leave_"))
	assert.Len(t, id, len("leave_")+16)
	assert.True(t, ValidateIDFormat(id, "leave"))

	other, err := GenerateSecureID("leave", 16)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestValidateIDFormat(t *testing.T) {
	assert.True(t, ValidateIDFormat("tchr_abc-DEF_123", "tchr"))
	assert.False(t, ValidateIDFormat("tchr_", "tchr"))
	assert.False(t, ValidateIDFormat("tchrabc", "tchr"))
	assert.False(t, ValidateIDFormat("leave_abc", "tchr"))
	assert.False(t, ValidateIDFormat("tchr_abc!", "tchr"))
}
