package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractorDefaultsModel(t *testing.T) {
	e := NewExtractor(Config{APIKey: "test-key"})
	assert.Equal(t, DefaultModel, e.model)
	assert.True(t, e.Enabled())

	e = NewExtractor(Config{APIKey: "test-key", Model: "gemini-2.5-pro"})
	assert.Equal(t, "gemini-2.5-pro", e.model)
}

func TestGeminiClientReused(t *testing.T) {
	e := NewExtractor(Config{APIKey: "test-key"})

	// One API client serves every message in a run.
	first, err := e.geminiClient(context.Background())
	require.NoError(t, err)
	second, err := e.geminiClient(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
