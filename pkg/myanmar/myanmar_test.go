package myanmar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMyanmar(t *testing.T) {
	t.Parallel()

	assert.True(t, IsMyanmar("မြန်မာ"))
	assert.True(t, IsMyanmar("Book ၁"))
	assert.False(t, IsMyanmar("Plain English"))
	assert.False(t, IsMyanmar(""))
}

func TestIsZawgyi(t *testing.T) {
	t.Parallel()

	// E vowel typed before Ka.
	assert.True(t, IsZawgyi("ေကာ"))
	// The same syllable in Unicode order.
	assert.False(t, IsZawgyi("ကော"))
	assert.False(t, IsZawgyi("English only"))
}

func TestZawgyiToUnicode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ကော", ZawgyiToUnicode("ေကာ"))
	assert.Equal(t, "မေ ကေ", ZawgyiToUnicode("ေမ ေက"))
	// Unicode input is untouched.
	assert.Equal(t, "ကော", ZawgyiToUnicode("ကော"))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "ကော", Normalize("ေကာ"))
	// Decomposed e + acute composes to é.
	assert.Equal(t, "caf\u00e9", Normalize("cafe\u0301"))

	assert.Nil(t, NormalizePtr(nil))
	s := "cafe\u0301"
	assert.Equal(t, "caf\u00e9", *NormalizePtr(&s))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))

	// No boundary near the end: hard cut.
	assert.Equal(t, "abcdefghij...", Truncate("abcdefghijklmnop", 10))

	// A space in the last fifth wins.
	assert.Equal(t, "abcdefghi...", Truncate("abcdefghi jklmnop", 10))

	// A space too early is ignored.
	assert.Equal(t, "ab cdefghij...", Truncate("ab cdefghijklmnop", 11))

	// Counting is by rune, not byte.
	long := strings.Repeat("မ", 20)
	assert.Equal(t, strings.Repeat("မ", 5)+"...", Truncate(long, 5))
}
