package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("writes to the given output", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(4, DescPublishing, &buf)
		require.NotNil(t, bar)

		assert.NoError(t, bar.Add(1))
		assert.NoError(t, bar.Finish())
		assert.True(t, bar.IsFinished())
	})

	t.Run("nil output discards", func(t *testing.T) {
		bar := NewProgressBar(2, DescPublishing, nil)
		require.NotNil(t, bar)
		assert.NoError(t, bar.Add(2))
		assert.NoError(t, bar.Finish())
	})
}
