package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	_, found := GetRequestID(context.Background())
	assert.False(t, found)

	ctx := WithRequestID(context.Background(), "abc")
	reqID, found := GetRequestID(ctx)
	assert.True(t, found)
	assert.Equal(t, "abc", reqID)
}
