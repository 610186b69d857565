package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorFlagsResolveDefaultsToP0(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	priors := registerPriorFlags(fs)
	require.NoError(t, fs.Parse(nil))

	p0, prior, err := priors.resolve()
	require.NoError(t, err)
	require.NotNil(t, p0)
	assert.Equal(t, 0.05, *p0)
	assert.Nil(t, prior)
}

func TestPriorFlagsResolveExplicitPrior(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	priors := registerPriorFlags(fs)
	require.NoError(t, fs.Parse([]string{"-prior", "2.5"}))

	p0, prior, err := priors.resolve()
	require.NoError(t, err)
	assert.Nil(t, p0)
	require.NotNil(t, prior)
	assert.Equal(t, 2.5, *prior)
}

func TestPriorFlagsResolveRejectsBothSupplied(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	priors := registerPriorFlags(fs)
	require.NoError(t, fs.Parse([]string{"-p0", "0.1", "-prior", "2.5"}))

	_, _, err := priors.resolve()
	require.Error(t, err)
}
