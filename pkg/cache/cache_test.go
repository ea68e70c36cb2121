package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "lease", Key("lease"))
	assert.Equal(t, "dedup:events:42", Key("dedup", "events", 42))
}
