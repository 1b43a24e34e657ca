package realtimesvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreamBackoff_DoublesUpToCap(t *testing.T) {
	backoff := streamRetryBase
	assert.Equal(t, 4*time.Second, nextStreamBackoff(backoff))

	// Nhân đôi liên tiếp phải chạm trần và dừng ở đó
	for i := 0; i < 10; i++ {
		backoff = nextStreamBackoff(backoff)
	}
	assert.Equal(t, streamRetryMax, backoff)
	assert.Equal(t, streamRetryMax, nextStreamBackoff(streamRetryMax))
}
