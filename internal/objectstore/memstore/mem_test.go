package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Upload(ctx, "b", "x/1.png", []byte("p"), "image/png"))
	assert.True(t, s.Has("b", "x/1.png"))
	assert.Equal(t, "image/png", s.ContentType("b", "x/1.png"))
	assert.Equal(t, "http://mem.local/b/x/1.png", s.PublicURL("b", "x/1.png"))

	require.NoError(t, s.Remove(ctx, "b", "x/1.png"))
	assert.Empty(t, s.Keys())
	assert.Equal(t, []string{"upload", "remove"}, s.Ops())

	s.UploadErr = errors.New("full")
	require.Error(t, s.Upload(ctx, "b", "x/2.png", nil, ""))
	assert.False(t, s.Has("b", "x/2.png"))
	assert.Len(t, s.Calls(), 3)
}
