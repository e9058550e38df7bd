package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_NonZero(t *testing.T) {
	d := Default()
	assert.Equal(t, 3, d.Perimeters)
	assert.True(t, d.ThinWalls)
	assert.Equal(t, DenseAutomatic, d.DenseAlgorithm)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")

	want := Default()
	want.Perimeters = 5
	want.InfillDense = false
	want.DenseAlgorithm = DenseEnlarged

	require.NoError(t, Save(path, want))
	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
