package dmpexport

import "context"

// Localizer resolves narrative keys to phrases. *i18n.Bundle implements it.
type Localizer interface {
	Lookup(key string) (string, error)
}

// ProjectInfo is what the institutional project registry knows about a
// project.
type ProjectInfo struct {
	Acronym        string
	FundingProgram string
}

// ProjectRegistry looks up projects by their institutional id.
type ProjectRegistry interface {
	Project(ctx context.Context, universityID string) (*ProjectInfo, error)
}

// StorageCatalog describes the institution's internal storage services.
type StorageCatalog interface {
	StorageDescription(ctx context.Context, storageID string) (string, error)
}

// RepositoryInfo describes a public data repository.
type RepositoryInfo struct {
	Description string
	URL         string
}

// RepositoryCatalog looks up repositories by id.
type RepositoryCatalog interface {
	Repository(ctx context.Context, repositoryID string) (*RepositoryInfo, error)
}

// Lookups bundles the external lookup services. Any of them may be nil;
// a missing service or a failed lookup yields no data rather than an
// error.
type Lookups struct {
	Projects     ProjectRegistry
	Storage      StorageCatalog
	Repositories RepositoryCatalog
}
