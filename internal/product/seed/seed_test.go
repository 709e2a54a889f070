package seed

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/abgdnv/productmanager/internal/product/manager"
	"github.com/abgdnv/productmanager/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	// given
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	s := store.NewFileStore(filepath.Join(t.TempDir(), "Productos"), logger)
	m := manager.New(s, logger)

	// when
	applied, err := Apply(ctx, s, m)

	// then
	require.NoError(t, err)
	assert.True(t, applied)
	products, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(Products()))
	for i, p := range products {
		assert.Equal(t, int64(i+1), p.ID)
		assert.Equal(t, Products()[i].Code, p.Code)
	}

	// an existing store is left alone
	require.NoError(t, s.DeleteAll(ctx))
	applied, err = Apply(ctx, s, m)
	require.NoError(t, err)
	assert.False(t, applied)
	products, err = s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
