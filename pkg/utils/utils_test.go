package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundedPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{2, 3, 67},
		{1, 3, 33},
		{0, 5, 0},
		{5, 4, 125},
		{1, 8, 13},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundedPercent(tt.part, tt.whole), "%d/%d", tt.part, tt.whole)
	}
}

func TestPrettyJSON(t *testing.T) {
	out, err := PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)

	out, err = PrettyJSON([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, "[\n  1,\n  2\n]", out)

	_, err = PrettyJSON([]byte(`{`))
	assert.Error(t, err)
}

func TestGenerateEventID(t *testing.T) {
	id, err := GenerateEventID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "evt_"))
	assert.Len(t, id, 16)
}
