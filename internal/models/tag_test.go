package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagName(t *testing.T) {
	for _, name := range []string{"JOGGING", "FITNESS", "CROSSFIT"} {
		parsed, err := ParseTagName(name)
		require.NoError(t, err)
		assert.Equal(t, TagName(name), parsed)
	}

	_, err := ParseTagName("SWIMMING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWIMMING")

	_, err = ParseTagName("jogging")
	require.Error(t, err)
}

func TestTagString(t *testing.T) {
	bare := Tag{ID: 1, Name: TagJogging}
	assert.Equal(t, "JOGGING", bare.String())

	leveled := Tag{ID: 1, Name: TagJogging, Level: &Level{ID: 1, Name: LevelFirst}}
	assert.Equal(t, "JOGGING: FIRST_LEVEL", leveled.String())
}
