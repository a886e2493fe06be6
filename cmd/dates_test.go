package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDates(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"dates"}, args...))
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestDatesNormalize(t *testing.T) {
	out, err := runDates(t, "normalize", "2026-1-16 09:30")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-16\n", out)

	out, err = runDates(t, "normalize", "1/16/2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-16\n", out)
}

func TestDatesNormalize_Unrecognized(t *testing.T) {
	_, err := runDates(t, "normalize", "yesterday")
	require.Error(t, err)
}

func TestDatesExpand(t *testing.T) {
	out, err := runDates(t, "expand", "15/1 + 16/1/2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15\n2026-01-16\n", out)
}

func TestDatesExpand_Empty(t *testing.T) {
	_, err := runDates(t, "expand", "n/a")
	require.Error(t, err)
}

func TestDatesExpand_ArgCount(t *testing.T) {
	_, err := runDates(t, "expand")
	require.Error(t, err)
}
