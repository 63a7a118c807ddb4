package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCmdWritesWAVFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out.wav")
	require.NoError(t, os.WriteFile(inPath, []byte("hello modem"), 0o644))

	cmd := newEncodeCmd()
	cmd.SetArgs([]string{"--input", inPath, "--output", outPath})
	require.NoError(t, cmd.Execute())

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(44)) // bigger than a bare WAV header
}

func TestEncodeCmdRejectsMissingInputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cmd := newEncodeCmd()
	cmd.SetArgs([]string{"--input", filepath.Join(dir, "does-not-exist.txt")})
	err := cmd.Execute()
	require.Error(t, err)
	_, ok := err.(userError)
	assert.True(t, ok, "missing input file should be reported as a user error")
}

func TestEncodeThenDecodeCmdRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	wavPath := filepath.Join(dir, "roundtrip.wav")
	outPath := filepath.Join(dir, "out.txt")
	payload := []byte("round trip through the cli")
	require.NoError(t, os.WriteFile(inPath, payload, 0o644))

	encodeCmd := newEncodeCmd()
	encodeCmd.SetArgs([]string{"--input", inPath, "--output", wavPath})
	require.NoError(t, encodeCmd.Execute())

	decodeCmd := newDecodeCmd()
	decodeCmd.SetArgs([]string{"--input", wavPath, "--output", outPath})
	require.NoError(t, decodeCmd.Execute())

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDecodeCmdRejectsMissingInputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cmd := newDecodeCmd()
	cmd.SetArgs([]string{"--input", filepath.Join(dir, "nope.wav")})
	err := cmd.Execute()
	require.Error(t, err)
	_, ok := err.(userError)
	assert.True(t, ok, "missing WAV file should be reported as a user error")
}
