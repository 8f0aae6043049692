package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "2025-02-12", formatDate(time.Date(2025, 2, 12, 10, 0, 0, 0, time.UTC)))
}
