package main

import (
	"testing"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClasses(t *testing.T) {
	ids, err := parseClasses([]string{"reg64", " m256"})
	require.NoError(t, err)
	assert.Equal(t, []bench.ClassID{bench.Reg64, bench.M256}, ids)

	ids, err = parseClasses(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseClasses([]string{"m1024"})
	assert.Error(t, err)
}
