package dmp

import (
	"fmt"
	"strings"
)

// Choice is an enumerated answer that has a display label. Every choice
// list in a DMP carries an OTHER value whose label can be overridden by
// a free-text field.
type Choice interface {
	Label() string
	IsOther() bool
}

// DataSource classifies a dataset as produced by the project or reused.
type DataSource string

const (
	SourceNew    DataSource = "NEW"
	SourceReused DataSource = "REUSED"
)

// DataAccess is the access level a dataset is published with.
type DataAccess string

const (
	AccessOpen       DataAccess = "OPEN"
	AccessRestricted DataAccess = "RESTRICTED"
	AccessClosed     DataAccess = "CLOSED"
)

var dataAccessLabels = map[DataAccess]string{
	AccessOpen:       "open",
	AccessRestricted: "restricted",
	AccessClosed:     "closed",
}

// Label returns the display label.
func (a DataAccess) Label() string { return label(dataAccessLabels, a) }

// AccessRight is what a group of people may do with a dataset.
type AccessRight string

const (
	RightNone      AccessRight = "NONE"
	RightRead      AccessRight = "READ"
	RightWrite     AccessRight = "WRITE"
	RightReadWrite AccessRight = "READWRITE"
)

var accessRightLabels = map[AccessRight]string{
	RightNone:      "None",
	RightRead:      "Read",
	RightWrite:     "Write",
	RightReadWrite: "Read/Write",
}

// Label returns the display label.
func (r AccessRight) Label() string { return label(accessRightLabels, r) }

// SecurityMeasure protects sensitive data.
type SecurityMeasure string

const (
	MeasureEncryption    SecurityMeasure = "ENCRYPTION"
	MeasureAccessControl SecurityMeasure = "ACCESS_CONTROL"
	MeasureSecureStorage SecurityMeasure = "SECURE_STORAGE"
	MeasureTwoFactor     SecurityMeasure = "TWO_FACTOR_AUTHENTICATION"
	MeasureOther         SecurityMeasure = "OTHER"
)

var securityMeasureLabels = map[SecurityMeasure]string{
	MeasureEncryption:    "encryption",
	MeasureAccessControl: "access control",
	MeasureSecureStorage: "secure storage",
	MeasureTwoFactor:     "two-factor authentication",
	MeasureOther:         "other",
}

// Label returns the display label.
func (m SecurityMeasure) Label() string { return label(securityMeasureLabels, m) }

// IsOther reports whether m is the OTHER sentinel.
func (m SecurityMeasure) IsOther() bool { return m == MeasureOther }

// Compliance is a measure taken to process personal data lawfully.
type Compliance string

const (
	ComplianceInformedConsent  Compliance = "INFORMED_CONSENT"
	ComplianceAnonymisation    Compliance = "ANONYMISATION"
	CompliancePseudonymisation Compliance = "PSEUDONYMISATION"
	ComplianceEncryption       Compliance = "ENCRYPTION"
	ComplianceOther            Compliance = "OTHER"
)

var complianceLabels = map[Compliance]string{
	ComplianceInformedConsent:  "informed consent",
	ComplianceAnonymisation:    "anonymisation",
	CompliancePseudonymisation: "pseudonymisation",
	ComplianceEncryption:       "encryption",
	ComplianceOther:            "other",
}

// Label returns the display label.
func (c Compliance) Label() string { return label(complianceLabels, c) }

// IsOther reports whether c is the OTHER sentinel.
func (c Compliance) IsOther() bool { return c == ComplianceOther }

// Agreement is a legal document restricting the use of data.
type Agreement string

const (
	AgreementConfidentiality Agreement = "CONFIDENTIALITY_AGREEMENT"
	AgreementConsortium      Agreement = "CONSORTIUM_AGREEMENT"
	AgreementDataProcessing  Agreement = "DATA_PROCESSING_AGREEMENT"
	AgreementLicense         Agreement = "LICENSE_AGREEMENT"
	AgreementOther           Agreement = "OTHER"
)

var agreementLabels = map[Agreement]string{
	AgreementConfidentiality: "confidentiality agreement",
	AgreementConsortium:      "consortium agreement",
	AgreementDataProcessing:  "data processing agreement",
	AgreementLicense:         "license agreement",
	AgreementOther:           "other",
}

// Label returns the display label.
func (a Agreement) Label() string { return label(agreementLabels, a) }

// IsOther reports whether a is the OTHER sentinel.
func (a Agreement) IsOther() bool { return a == AgreementOther }

// DataQuality is a quality control procedure.
type DataQuality string

const (
	QualityCalibration  DataQuality = "CALIBRATION"
	QualityRepeated     DataQuality = "REPEATED_MEASUREMENTS"
	QualityValidation   DataQuality = "DATA_ENTRY_VALIDATION"
	QualityPeerReview   DataQuality = "PEER_REVIEW"
	QualityStandardised DataQuality = "STANDARDISED_PROCESSES"
	QualityOther        DataQuality = "OTHER"
)

var dataQualityLabels = map[DataQuality]string{
	QualityCalibration:  "calibration of instruments",
	QualityRepeated:     "repeated samples or measurements",
	QualityValidation:   "validation of data entry",
	QualityPeerReview:   "peer review of data",
	QualityStandardised: "standardised data collection processes",
	QualityOther:        "other",
}

// Label returns the display label.
func (q DataQuality) Label() string { return label(dataQualityLabels, q) }

// IsOther reports whether q is the OTHER sentinel.
func (q DataQuality) IsOther() bool { return q == QualityOther }

// CostType classifies a cost item.
type CostType string

const (
	CostPersonnel CostType = "PERSONNEL"
	CostHardware  CostType = "HARDWARE"
	CostSoftware  CostType = "SOFTWARE"
	CostStorage   CostType = "STORAGE"
	CostArchiving CostType = "ARCHIVING"
	CostDatabase  CostType = "DATABASE_ACCESS"
	CostOther     CostType = "OTHER"
)

var costTypeLabels = map[CostType]string{
	CostPersonnel: "Personnel",
	CostHardware:  "Hardware",
	CostSoftware:  "Software",
	CostStorage:   "Storage",
	CostArchiving: "Archiving",
	CostDatabase:  "Database access",
	CostOther:     "Other",
}

// Label returns the display label.
func (c CostType) Label() string { return label(costTypeLabels, c) }

// HostKind discriminates the Host variants.
type HostKind int

const (
	HostUnknown HostKind = iota
	HostInternalStorage
	HostExternalStorage
	HostRepository
)

var hostKindNames = map[HostKind]string{
	HostInternalStorage: "storage",
	HostExternalStorage: "externalStorage",
	HostRepository:      "repository",
}

// String returns the JSON name of the kind.
func (k HostKind) String() string {
	if name, ok := hostKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k HostKind) MarshalText() ([]byte, error) {
	if k == HostUnknown {
		return nil, fmt.Errorf("unknown host kind")
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *HostKind) UnmarshalText(text []byte) error {
	for kind, name := range hostKindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown host kind %q", text)
}

func label[T ~string](labels map[T]string, v T) string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}
