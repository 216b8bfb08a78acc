package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// executeCmd executes the root command with the given args and returns the output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Execute(t *testing.T) {
	t.Run("root command shows help", func(t *testing.T) {
		_, err := executeCmd(t)
		assert.NoError(t, err)
	})

	t.Run("help flag", func(t *testing.T) {
		output, err := executeCmd(t, "--help")
		assert.NoError(t, err)
		assert.Contains(t, output, "kustodian")
		assert.Contains(t, output, "kustomize")
	})
}

func TestRootCmd_Structure(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "render")
	assert.Contains(t, commandNames, "discover")
	assert.Contains(t, commandNames, "doctor")
	assert.Contains(t, commandNames, "update")
}
