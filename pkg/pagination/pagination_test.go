package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Parallel()

	assert.True(t, New(120, 50, 0).HasMore)
	assert.True(t, New(120, 50, 50).HasMore)
	assert.False(t, New(120, 50, 100).HasMore)
	assert.False(t, New(0, 50, 0).HasMore)
	assert.Equal(t, Pagination{Total: 3, Limit: 10, Offset: 0}, New(3, 10, 0))
}
