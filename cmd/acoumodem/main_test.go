package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForUserErrorIsOne(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, exitCodeFor(userError{errors.New("bad flag")}))
}

func TestExitCodeForOtherErrorIsTwo(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, exitCodeFor(errors.New("irrecoverable")))
}

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	t.Parallel()
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["encode"])
	assert.True(t, names["decode"])
	assert.True(t, names["serve"])
}
