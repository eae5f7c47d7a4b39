package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/horizon/internal/testutil"
)

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	id := gen.Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}

func TestUUIDv7Generator_SortsByCreation(t *testing.T) {
	gen := UUIDv7Generator{}
	prev := gen.Generate()
	for i := 0; i < 100; i++ {
		next := gen.Generate()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("run-1", "run-2")
	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestRunIDGeneratorImplementations(t *testing.T) {
	var _ RunIDGenerator = UUIDv7Generator{}
	var _ RunIDGenerator = NewFixedGenerator()
	var _ RunIDGenerator = testutil.NewFixedRunIDGenerator("")
}
