package storage

import (
	"context"
	"testing"

	"codeberg.org/interprep/server/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportQuestions_LengthMismatch(t *testing.T) {
	c := &Client{}

	err := c.ImportQuestions(context.Background(), []catalog.Item{{ID: 1}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestImportQuestions_Empty(t *testing.T) {
	c := &Client{}

	assert.NoError(t, c.ImportQuestions(context.Background(), nil, nil))
}
