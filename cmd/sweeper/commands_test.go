package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"pending", "payment", "loop"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	pending, _, _ := root.Find([]string{"pending"})
	assert.NotNil(t, pending.Flags().Lookup("force"))

	loop, _, _ := root.Find([]string{"loop"})
	assert.NotNil(t, loop.Flags().Lookup("tick"))

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestRootCmd_MissingConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	root := newRootCmd()
	root.SetArgs([]string{"pending", "--config", t.TempDir() + "/missing.toml"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
