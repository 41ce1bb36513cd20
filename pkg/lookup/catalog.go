// Package lookup provides a file-backed implementation of the lookup
// services an export consults: the institutional project registry, the
// internal storage descriptions and the repository catalog.
//
// A catalog file is YAML:
//
//	projects:
//	  U-17: {acronym: GLADY, fundingProgram: FWF}
//	storage:
//	  nas: a backed-up network share
//	repositories:
//	  r3d100010468: {description: Zenodo, url: https://zenodo.org}
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmpexport"
)

// ErrNotFound is wrapped by every failed lookup.
var ErrNotFound = errors.New("not found")

type projectEntry struct {
	Acronym        string `yaml:"acronym"`
	FundingProgram string `yaml:"fundingProgram"`
}

type repositoryEntry struct {
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

type catalogFile struct {
	Projects     map[string]projectEntry    `yaml:"projects"`
	Storage      map[string]string          `yaml:"storage"`
	Repositories map[string]repositoryEntry `yaml:"repositories"`
}

// Catalog answers project, storage and repository lookups from memory.
// It is safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	data catalogFile
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{data: catalogFile{
		Projects:     make(map[string]projectEntry),
		Storage:      make(map[string]string),
		Repositories: make(map[string]repositoryEntry),
	}}
}

// Load decodes a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	c := New()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c.data); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode lookup catalog: %w", err)
	}
	if c.data.Projects == nil {
		c.data.Projects = make(map[string]projectEntry)
	}
	if c.data.Storage == nil {
		c.data.Storage = make(map[string]string)
	}
	if c.data.Repositories == nil {
		c.data.Repositories = make(map[string]repositoryEntry)
	}
	return c, nil
}

// LoadFile reads the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lookup catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// AddProject registers a project under its institutional id.
func (c *Catalog) AddProject(universityID string, info dmpexport.ProjectInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Projects[universityID] = projectEntry{Acronym: info.Acronym, FundingProgram: info.FundingProgram}
}

// AddStorage registers an internal storage description.
func (c *Catalog) AddStorage(storageID, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Storage[storageID] = description
}

// AddRepository registers a repository.
func (c *Catalog) AddRepository(repositoryID string, info dmpexport.RepositoryInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Repositories[repositoryID] = repositoryEntry{Description: info.Description, URL: info.URL}
}

// Project implements dmpexport.ProjectRegistry.
func (c *Catalog) Project(ctx context.Context, universityID string) (*dmpexport.ProjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.data.Projects[universityID]
	if !ok {
		return nil, fmt.Errorf("project %q: %w", universityID, ErrNotFound)
	}
	return &dmpexport.ProjectInfo{Acronym: entry.Acronym, FundingProgram: entry.FundingProgram}, nil
}

// StorageDescription implements dmpexport.StorageCatalog.
func (c *Catalog) StorageDescription(ctx context.Context, storageID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.data.Storage[storageID]
	if !ok {
		return "", fmt.Errorf("storage %q: %w", storageID, ErrNotFound)
	}
	return desc, nil
}

// Repository implements dmpexport.RepositoryCatalog.
func (c *Catalog) Repository(ctx context.Context, repositoryID string) (*dmpexport.RepositoryInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.data.Repositories[repositoryID]
	if !ok {
		return nil, fmt.Errorf("repository %q: %w", repositoryID, ErrNotFound)
	}
	return &dmpexport.RepositoryInfo{Description: entry.Description, URL: entry.URL}, nil
}

// Lookups returns the catalog wired as every lookup service.
func (c *Catalog) Lookups() dmpexport.Lookups {
	return dmpexport.Lookups{Projects: c, Storage: c, Repositories: c}
}
