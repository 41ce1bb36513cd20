package lookup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport"
)

const catalogYAML = `
projects:
  U-17:
    acronym: GLADY
    fundingProgram: FWF
storage:
  nas: a backed-up network share
repositories:
  r3d100010468:
    description: Zenodo general repository
    url: https://zenodo.org
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	ctx := context.Background()

	project, err := c.Project(ctx, "U-17")
	require.NoError(t, err)
	assert.Equal(t, &dmpexport.ProjectInfo{Acronym: "GLADY", FundingProgram: "FWF"}, project)

	desc, err := c.StorageDescription(ctx, "nas")
	require.NoError(t, err)
	assert.Equal(t, "a backed-up network share", desc)

	repo, err := c.Repository(ctx, "r3d100010468")
	require.NoError(t, err)
	assert.Equal(t, "https://zenodo.org", repo.URL)
}

func TestLookupMisses(t *testing.T) {
	c := New()
	ctx := context.Background()

	tests := []struct {
		name   string
		lookup func() error
	}{
		{name: "project", lookup: func() error { _, err := c.Project(ctx, "x"); return err }},
		{name: "storage", lookup: func() error { _, err := c.StorageDescription(ctx, "x"); return err }},
		{name: "repository", lookup: func() error { _, err := c.Repository(ctx, "x"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestLoadEdgeCases(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	c.AddStorage("s", "d")
	desc, err := c.StorageDescription(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "d", desc)

	c, err = Load(strings.NewReader("storage:\n  nas: x\n"))
	require.NoError(t, err)
	c.AddProject("p", dmpexport.ProjectInfo{Acronym: "A"})
	_, err = c.Project(context.Background(), "p")
	assert.NoError(t, err)

	_, err = Load(strings.NewReader("projects: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	lookups := c.Lookups()
	info, err := lookups.Repositories.Repository(context.Background(), "r3d100010468")
	require.NoError(t, err)
	assert.Equal(t, "Zenodo general repository", info.Description)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	c, err := Load(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Project(ctx, "U-17")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.AddRepository("r", dmpexport.RepositoryInfo{URL: "https://example.org"})
			_, _ = c.Repository(context.Background(), "r")
		}(i)
	}
	wg.Wait()

	info, err := c.Repository(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", info.URL)
}
