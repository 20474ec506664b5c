package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipDescription(t *testing.T) {
	assert.Equal(t, "", ClipDescription(""))
	assert.Equal(t, "abc...", ClipDescription("abc"))

	exact := strings.Repeat("y", 80)
	assert.Equal(t, exact+"...", ClipDescription(exact))
	assert.Equal(t, exact+"...", ClipDescription(exact+"tail"))

	// Rune-based, so multibyte text clips by characters not bytes.
	wide := strings.Repeat("ä", 90)
	assert.Equal(t, strings.Repeat("ä", 80)+"...", ClipDescription(wide))
}
