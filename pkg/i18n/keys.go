package i18n

// Narrative keys looked up while building replacements.
const (
	KeyAnd            = "conjunction.and"
	KeyYes            = "answer.yes"
	KeyNo             = "answer.no"
	KeyRetentionYears = "retention.years"

	KeyCostsAvail = "costs.avail"
	KeyCostsNo    = "costs.no"

	KeyDistributionStorage  = "distributionStorage"
	KeyDistributionExternal = "distributionExternal"

	KeyMetadataNo    = "metadata.no"
	KeyMetadataAvail = "metadata.avail"

	KeyDataOrganisationNo = "dataOrganisation.no"

	KeyDataQualityAvail   = "dataQualityControl.avail"
	KeyDataQualityDefault = "dataQualityControl.default"

	KeySensitiveAvail         = "sensitive.avail"
	KeySensitiveAvailData     = "sensitive.avail.data"
	KeySensitiveNo            = "sensitive.no"
	KeySensitiveMeasureNo     = "sensitiveMeasure.no"
	KeySensitiveMeasureAvail  = "sensitiveMeasure.avail"
	KeySensitiveMeasureSingle = "sensitiveMeasure.singular"
	KeySensitiveMeasureMulti  = "sensitiveMeasure.multiple"
	KeySensitiveAccess        = "sensitiveAccess"
	KeySensitiveAccessAvail   = "sensitiveAccess.avail"

	KeyToolsAvail = "tools.avail"
	KeyToolsNo    = "tools.no"

	KeyRestrictedAccessAvail = "restrictedAccess.avail"

	KeyPersonalAvail      = "personal.avail"
	KeyPersonalDataset    = "personalDataset"
	KeyPersonalCompliance = "personalCompliance"
	KeyPersonalNo         = "personal.no"

	KeyLegalAvail         = "legal.avail"
	KeyLegalAvailDefault  = "legal.avail.default"
	KeyLegalDataset       = "legalDataset"
	KeyLegalComment       = "legalComment"
	KeyLegalRights        = "legalRights.contact"
	KeyLegalRightsDefault = "legalRights.contact.default"
	KeyLegalNo            = "legal.no"

	KeyEthicalStatement = "ethicalStatement"
	KeyEthicalNo        = "ethical.no"
	KeyEthicalReviewed  = "ethicalReviewed.avail"
)

// Keys is the complete set of narrative keys a bundle must provide.
var Keys = []string{
	KeyAnd, KeyYes, KeyNo, KeyRetentionYears,
	KeyCostsAvail, KeyCostsNo,
	KeyDistributionStorage, KeyDistributionExternal,
	KeyMetadataNo, KeyMetadataAvail,
	KeyDataOrganisationNo,
	KeyDataQualityAvail, KeyDataQualityDefault,
	KeySensitiveAvail, KeySensitiveAvailData, KeySensitiveNo,
	KeySensitiveMeasureNo, KeySensitiveMeasureAvail, KeySensitiveMeasureSingle, KeySensitiveMeasureMulti,
	KeySensitiveAccess, KeySensitiveAccessAvail,
	KeyToolsAvail, KeyToolsNo,
	KeyRestrictedAccessAvail,
	KeyPersonalAvail, KeyPersonalDataset, KeyPersonalCompliance, KeyPersonalNo,
	KeyLegalAvail, KeyLegalAvailDefault, KeyLegalDataset, KeyLegalComment,
	KeyLegalRights, KeyLegalRightsDefault, KeyLegalNo,
	KeyEthicalStatement, KeyEthicalNo, KeyEthicalReviewed,
}
