package internal

import (
	"bytes"
	"testing"

	"github.com/ghaniswara/people-swipe/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer

	t.Run("defaults to serve in dev", func(t *testing.T) {
		opts, err := parseArgs(&out, []string{"people-swipe"})
		require.NoError(t, err)
		assert.Equal(t, "serve", opts.command)
		assert.Equal(t, "dev", opts.env)
		assert.Equal(t, seed.DefaultCount, opts.count)
	})

	t.Run("subcommand and flags", func(t *testing.T) {
		opts, err := parseArgs(&out, []string{"people-swipe", "seed", "--env", "test", "--count", "3"})
		require.NoError(t, err)
		assert.Equal(t, "seed", opts.command)
		assert.Equal(t, "test", opts.env)
		assert.Equal(t, 3, opts.count)
	})

	t.Run("flags before subcommand", func(t *testing.T) {
		opts, err := parseArgs(&out, []string{"people-swipe", "--env=prod", "email-popular"})
		require.NoError(t, err)
		assert.Equal(t, "email-popular", opts.command)
		assert.Equal(t, "prod", opts.env)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, err := parseArgs(&out, []string{"people-swipe", "drop-tables"})
		assert.Error(t, err)
	})

	t.Run("non positive count", func(t *testing.T) {
		_, err := parseArgs(&out, []string{"people-swipe", "seed", "--count", "0"})
		assert.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := parseArgs(&out, []string{"people-swipe", "--verbose"})
		assert.Error(t, err)
	})
}
