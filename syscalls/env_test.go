package syscalls

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTableSeedsFromHostEnvironment(t *testing.T) {
	require.NoError(t, os.Setenv("WATERVM_TEST_SEED", "seed-value"))
	defer os.Unsetenv("WATERVM_TEST_SEED")

	env := NewEnvTable()
	v, ok := env.Get("WATERVM_TEST_SEED")
	require.True(t, ok)
	assert.Equal(t, "seed-value", v)
}

func TestEnvTableSetIsIsolatedFromHost(t *testing.T) {
	env := NewEnvTable()
	env.Set("WATERVM_TEST_ISOLATED", "inner")

	_, hostHasIt := os.LookupEnv("WATERVM_TEST_ISOLATED")
	assert.False(t, hostHasIt, "EnvTable mutations must not leak back to the host process")

	v, ok := env.Get("WATERVM_TEST_ISOLATED")
	require.True(t, ok)
	assert.Equal(t, "inner", v)
}

func TestEnvTableGetMissingKey(t *testing.T) {
	env := NewEnvTable()
	_, ok := env.Get("WATERVM_TEST_DEFINITELY_UNSET")
	assert.False(t, ok)
}
