package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuppressProgress(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressProgress(ctx))
	assert.True(t, shouldSuppressProgress(withSuppressProgress(ctx)))

	wrongType := context.WithValue(ctx, suppressProgressKey, "yes")
	assert.False(t, shouldSuppressProgress(wrongType))
}
