package dmp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// DMP is the root aggregate of a Data Management Plan.
type DMP struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Created  *Date  `json:"created,omitempty"`
	Modified *Date  `json:"modified,omitempty"`

	Project      *Project      `json:"project,omitempty"`
	Contact      *Person       `json:"contact,omitempty"`
	Coordinator  *Person       `json:"coordinator,omitempty"`
	Contributors []Contributor `json:"contributors,omitempty"`

	Datasets []Dataset `json:"datasets,omitempty"`
	Hosts    []Host    `json:"hosts,omitempty"`
	Costs    []Cost    `json:"costs,omitempty"`

	DataGeneration       string `json:"dataGeneration,omitempty"`
	Documentation        string `json:"documentation,omitempty"`
	Structure            string `json:"structure,omitempty"`
	TargetAudience       string `json:"targetAudience,omitempty"`
	Metadata             string `json:"metadata,omitempty"`
	Tools                string `json:"tools,omitempty"`
	RestrictedAccessInfo string `json:"restrictedAccessInfo,omitempty"`
	ExternalStorageInfo  string `json:"externalStorageInfo,omitempty"`

	DataQuality      []DataQuality `json:"dataQuality,omitempty"`
	OtherDataQuality string        `json:"otherDataQuality,omitempty"`

	PersonalData                bool         `json:"personalData"`
	PersonalDataCompliance      []Compliance `json:"personalDataCompliance,omitempty"`
	OtherPersonalDataCompliance string       `json:"otherPersonalDataCompliance,omitempty"`

	SensitiveData             bool              `json:"sensitiveData"`
	SensitiveDataSecurity     []SecurityMeasure `json:"sensitiveDataSecurity,omitempty"`
	OtherDataSecurityMeasures string            `json:"otherDataSecurityMeasures,omitempty"`
	SensitiveDataAccess       string            `json:"sensitiveDataAccess,omitempty"`

	LegalRestrictions              bool        `json:"legalRestrictions"`
	LegalRestrictionsDocuments     []Agreement `json:"legalRestrictionsDocuments,omitempty"`
	OtherLegalRestrictionsDocument string      `json:"otherLegalRestrictionsDocument,omitempty"`
	LegalRestrictionsComment       string      `json:"legalRestrictionsComment,omitempty"`
	DataRightsAndAccessControl     string      `json:"dataRightsAndAccessControl,omitempty"`

	HumanParticipants  bool `json:"humanParticipants"`
	EthicalIssuesExist bool `json:"ethicalIssuesExist"`
	CommitteeReviewed  bool `json:"committeeReviewed"`

	CostsExist bool `json:"costsExist"`

	hostsByID        map[int64]*Host
	datasetsByHostID map[int64][]*Dataset
	resolved         bool
}

// ErrUnresolved is returned when a DMP is rendered before Resolve
// succeeded on it.
var ErrUnresolved = errors.New("dmp: Resolve has not been called")

// Project is the research project a DMP belongs to.
type Project struct {
	UniversityID string `json:"universityId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Start        *Date  `json:"start,omitempty"`
	End          *Date  `json:"end,omitempty"`
	GrantID      string `json:"grantId,omitempty"`
}

// Identifier is an external identifier with its scheme, e.g. an ORCID
// iD or a ROR id.
type Identifier struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// Person is a contact, coordinator or contributor.
type Person struct {
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	Mbox          string      `json:"mbox,omitempty"`
	PersonID      *Identifier `json:"personId,omitempty"`
	Affiliation   string      `json:"affiliation,omitempty"`
	AffiliationID *Identifier `json:"affiliationId,omitempty"`
}

// Name returns "First Last", or "" unless both parts are present.
func (p *Person) Name() string {
	if p == nil || p.FirstName == "" || p.LastName == "" {
		return ""
	}
	return p.FirstName + " " + p.LastName
}

// Contributor is a person with a project role.
type Contributor struct {
	Person
	Role string `json:"role,omitempty"`
}

// License is the license a dataset is published under.
type License struct {
	Acronym string `json:"acronym"`
	URL     string `json:"url,omitempty"`
}

// Distribution links a dataset to the host it is stored or published on.
type Distribution struct {
	HostID int64 `json:"hostId"`
}

// Dataset is one dataset described by a DMP.
type Dataset struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Types             []string       `json:"types,omitempty"`
	Size              *int64         `json:"size,omitempty"`
	Comment           string         `json:"comment,omitempty"`
	Source            DataSource     `json:"source"`
	PersonalData      bool           `json:"personalData"`
	SensitiveData     bool           `json:"sensitiveData"`
	LegalRestrictions bool           `json:"legalRestrictions"`
	License           *License       `json:"license,omitempty"`
	Start             *Date          `json:"start,omitempty"`
	DataAccess        DataAccess     `json:"dataAccess,omitempty"`
	DatasetIdentifier *Identifier    `json:"datasetIdentifier,omitempty"`
	RetentionPeriod   *int           `json:"retentionPeriod,omitempty"`
	Distributions     []Distribution `json:"distributions,omitempty"`

	SelectedProjectMembersAccess AccessRight `json:"selectedProjectMembersAccess,omitempty"`
	OtherProjectMembersAccess    AccessRight `json:"otherProjectMembersAccess,omitempty"`
	PublicAccess                 AccessRight `json:"publicAccess,omitempty"`

	Delete            bool    `json:"delete"`
	DateOfDeletion    *Date   `json:"dateOfDeletion,omitempty"`
	ReasonForDeletion string  `json:"reasonForDeletion,omitempty"`
	DeletionPerson    *Person `json:"deletionPerson,omitempty"`
}

// Host is a storage target or a repository. Kind is the variant
// discriminant; StorageID is set for internal storage and RepositoryID
// for repositories.
type Host struct {
	ID           int64    `json:"id"`
	Kind         HostKind `json:"kind"`
	Title        string   `json:"title"`
	StorageID    string   `json:"storageId,omitempty"`
	RepositoryID string   `json:"repositoryId,omitempty"`
}

// Cost is one cost item. Value is exact; totals never go through floats.
type Cost struct {
	Title        string           `json:"title"`
	Type         CostType         `json:"type,omitempty"`
	Description  string           `json:"description,omitempty"`
	CurrencyCode string           `json:"currencyCode,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
}

// Load decodes a JSON DMP snapshot and resolves it.
func Load(r io.Reader) (*DMP, error) {
	var d DMP
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode dmp: %w", err)
	}
	if err := d.Resolve(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Resolve validates host variants and builds the distribution index. It
// must be called once after the aggregate is assembled and before it is
// rendered; Load does this automatically.
func (d *DMP) Resolve() error {
	d.resolved = false
	d.hostsByID = make(map[int64]*Host, len(d.Hosts))
	for i := range d.Hosts {
		h := &d.Hosts[i]
		switch h.Kind {
		case HostInternalStorage, HostExternalStorage, HostRepository:
		default:
			return fmt.Errorf("host %d: unknown kind %d", h.ID, h.Kind)
		}
		if _, dup := d.hostsByID[h.ID]; dup {
			return fmt.Errorf("duplicate host id %d", h.ID)
		}
		d.hostsByID[h.ID] = h
	}

	d.datasetsByHostID = make(map[int64][]*Dataset)
	for i := range d.Datasets {
		ds := &d.Datasets[i]
		switch ds.Source {
		case SourceNew, SourceReused:
		default:
			return fmt.Errorf("dataset %d: unknown source %q", ds.ID, ds.Source)
		}
		for _, dist := range ds.Distributions {
			if _, ok := d.hostsByID[dist.HostID]; !ok {
				return fmt.Errorf("dataset %d: distribution to unknown host %d", ds.ID, dist.HostID)
			}
			d.datasetsByHostID[dist.HostID] = append(d.datasetsByHostID[dist.HostID], ds)
		}
	}
	d.resolved = true
	return nil
}

// Resolved reports whether the last call to Resolve succeeded.
func (d *DMP) Resolved() bool { return d.resolved }

// Host returns the host with the given id.
func (d *DMP) Host(id int64) (*Host, bool) {
	h, ok := d.hostsByID[id]
	return h, ok
}

// DatasetsOnHost returns the datasets distributed to a host, in dataset
// order.
func (d *DMP) DatasetsOnHost(hostID int64) []*Dataset {
	return d.datasetsByHostID[hostID]
}

// HostsOf returns the hosts a dataset is distributed to, in distribution
// order.
func (d *DMP) HostsOf(ds *Dataset) []*Host {
	var hosts []*Host
	for _, dist := range ds.Distributions {
		if h, ok := d.hostsByID[dist.HostID]; ok {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// NewDatasets returns the datasets produced by the project.
func (d *DMP) NewDatasets() []*Dataset {
	return d.FilterDatasets(func(ds *Dataset) bool { return ds.Source == SourceNew })
}

// ReusedDatasets returns the reused datasets.
func (d *DMP) ReusedDatasets() []*Dataset {
	return d.FilterDatasets(func(ds *Dataset) bool { return ds.Source == SourceReused })
}

// DeletedDatasets returns the datasets scheduled for deletion.
func (d *DMP) DeletedDatasets() []*Dataset {
	return d.FilterDatasets(func(ds *Dataset) bool { return ds.Delete })
}

// FilterDatasets returns the datasets for which keep returns true, in
// stored order.
func (d *DMP) FilterDatasets(keep func(*Dataset) bool) []*Dataset {
	var out []*Dataset
	for i := range d.Datasets {
		if keep(&d.Datasets[i]) {
			out = append(out, &d.Datasets[i])
		}
	}
	return out
}
