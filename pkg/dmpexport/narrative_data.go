package dmpexport

import (
	"strings"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

func (b *builder) datasetNarrative(body *Replacements) {
	body.Set(TokenDataGeneration, b.plan.DataGeneration)
	body.Set(TokenDocumentation, b.plan.Documentation)
	body.Set(TokenTargetAudience, b.plan.TargetAudience)
}

// storage describes where datasets are kept, one fragment per storage
// host that holds at least one dataset. Repositories are described by
// repositories.
func (b *builder) storage(body *Replacements) {
	var fragments []string
	for i := range b.plan.Hosts {
		host := &b.plan.Hosts[i]
		datasets := b.plan.DatasetsOnHost(host.ID)
		if len(datasets) == 0 {
			continue
		}
		ids := JoinWithComma(b.ids.DescribeAll(datasets))

		switch host.Kind {
		case dmp.HostInternalStorage:
			fragment := ids + " " + b.t(i18n.KeyDistributionStorage) + " " + host.Title
			if desc := b.storageDescription(host); desc != "" {
				fragment += ": " + desc
			} else {
				fragment += "."
			}
			fragments = append(fragments, fragment)
		case dmp.HostExternalStorage:
			fragment := ids + " " + b.t(i18n.KeyDistributionStorage) + " " + host.Title + "."
			if info := b.plan.ExternalStorageInfo; info != "" {
				fragment += " " + b.t(i18n.KeyDistributionExternal) + " " + strings.ToLower(info)
			}
			fragments = append(fragments, fragment)
		case dmp.HostRepository:
		}
	}
	body.Set(TokenStorage, strings.Join(fragments, ";"))
}

func (b *builder) storageDescription(host *dmp.Host) string {
	if host.StorageID == "" || b.lookups.Storage == nil {
		return ""
	}
	desc, err := b.lookups.Storage.StorageDescription(b.ctx, host.StorageID)
	if err != nil {
		b.log.WithField("storage_id", host.StorageID).WarnErr(err, "storage description lookup failed")
		return ""
	}
	return desc
}

func (b *builder) metadata(body *Replacements) {
	if md := b.plan.Metadata; md == "" {
		body.Set(TokenMetadata, b.t(i18n.KeyMetadataNo))
	} else {
		if !strings.HasSuffix(md, ".") {
			md += "."
		}
		body.Set(TokenMetadata, md+" "+b.t(i18n.KeyMetadataAvail))
	}

	if b.plan.Structure != "" {
		body.Set(TokenDataOrganisation, b.plan.Structure)
	} else {
		body.Set(TokenDataOrganisation, b.t(i18n.KeyDataOrganisationNo))
	}
}

func (b *builder) dataQuality(body *Replacements) {
	if len(b.plan.DataQuality) == 0 {
		body.Set(TokenDataQualityControl, b.t(i18n.KeyDataQualityDefault))
		return
	}
	labels := ChoiceLabels(b.plan.DataQuality, b.plan.OtherDataQuality)
	body.Set(TokenDataQualityControl, b.t(i18n.KeyDataQualityAvail)+" "+b.and(labels)+".")
}

func (b *builder) sensitiveData(body *Replacements) {
	plan := b.plan
	if !plan.SensitiveData {
		body.Set(TokenSensitiveData, b.t(i18n.KeySensitiveNo))
		return
	}

	var sb strings.Builder
	sb.WriteString(b.t(i18n.KeySensitiveAvail))
	flagged := plan.FilterDatasets(func(ds *dmp.Dataset) bool { return ds.SensitiveData })
	if len(flagged) > 0 {
		sb.WriteString(" " + b.t(i18n.KeySensitiveAvailData) + " " + b.and(b.ids.DescribeAll(flagged)))
	}
	sb.WriteString(". ")

	if measures := plan.SensitiveDataSecurity; len(measures) == 0 {
		sb.WriteString(b.t(i18n.KeySensitiveMeasureNo))
	} else {
		sb.WriteString(b.t(i18n.KeySensitiveMeasureAvail) + " ")
		sb.WriteString(b.and(ChoiceLabels(measures, plan.OtherDataSecurityMeasures)) + " ")
		if len(measures) == 1 {
			sb.WriteString(b.t(i18n.KeySensitiveMeasureSingle))
		} else {
			sb.WriteString(b.t(i18n.KeySensitiveMeasureMulti))
		}
	}

	if access := plan.SensitiveDataAccess; access != "" {
		sb.WriteString(" " + b.t(i18n.KeySensitiveAccess) + " " + access + " " + b.t(i18n.KeySensitiveAccessAvail))
	}
	body.Set(TokenSensitiveData, sb.String())
}

// repositories lists each repository a dataset is published in once, in
// order of first use, as "description url;" lines.
func (b *builder) repositories(body *Replacements) {
	seen := make(map[int64]bool)
	var entries []string
	for i := range b.plan.Datasets {
		for _, host := range b.plan.HostsOf(&b.plan.Datasets[i]) {
			if host.Kind != dmp.HostRepository || seen[host.ID] {
				continue
			}
			seen[host.ID] = true
			entries = append(entries, b.repositoryEntry(host))
		}
	}

	text := strings.Join(entries, "; ")
	if text != "" {
		text += ";"
	}
	body.Set(TokenRepoInformation, text)
}

func (b *builder) repositoryEntry(host *dmp.Host) string {
	if host.RepositoryID == "" || b.lookups.Repositories == nil {
		return host.Title
	}
	info, err := b.lookups.Repositories.Repository(b.ctx, host.RepositoryID)
	if err != nil || info == nil {
		if err != nil {
			b.log.WithField("repository_id", host.RepositoryID).WarnErr(err, "repository lookup failed")
		}
		return host.Title
	}
	entry := strings.Join(nonEmpty(info.Description, info.URL), " ")
	if entry == "" {
		return host.Title
	}
	return entry
}

func (b *builder) access(body *Replacements) {
	if tools := b.plan.Tools; tools != "" {
		body.Set(TokenTools, b.t(i18n.KeyToolsAvail)+" "+tools)
	} else {
		body.Set(TokenTools, b.t(i18n.KeyToolsNo))
	}

	if info := b.plan.RestrictedAccessInfo; info != "" {
		body.Set(TokenRestrictedAccessInfo, b.t(i18n.KeyRestrictedAccessAvail)+" "+info)
	} else {
		body.Set(TokenRestrictedAccessInfo, "")
	}
}

func (b *builder) personalData(body *Replacements) {
	plan := b.plan
	if !plan.PersonalData {
		body.Set(TokenPersonalData, b.t(i18n.KeyPersonalNo))
		return
	}

	parts := []string{b.t(i18n.KeyPersonalAvail)}
	flagged := plan.FilterDatasets(func(ds *dmp.Dataset) bool { return ds.PersonalData })
	if len(flagged) > 0 {
		parts = append(parts, b.and(b.ids.DescribeAll(flagged))+" "+b.t(i18n.KeyPersonalDataset))
	}
	if len(plan.PersonalDataCompliance) > 0 {
		labels := ChoiceLabels(plan.PersonalDataCompliance, plan.OtherPersonalDataCompliance)
		parts = append(parts, b.t(i18n.KeyPersonalCompliance)+" "+b.and(labels)+".")
	}
	body.Set(TokenPersonalData, strings.Join(parts, " "))
}

// legalRestrictions renders the restriction sentences, then the rights
// contact as a separate line.
func (b *builder) legalRestrictions(body *Replacements) {
	plan := b.plan
	if !plan.LegalRestrictions {
		body.Set(TokenLegalRestriction, b.t(i18n.KeyLegalNo))
		return
	}

	var parts []string
	if docs := plan.LegalRestrictionsDocuments; len(docs) > 0 {
		labels := ChoiceLabels(docs, plan.OtherLegalRestrictionsDocument)
		parts = append(parts, b.t(i18n.KeyLegalAvail)+" "+b.and(labels)+".")
	} else {
		parts = append(parts, b.t(i18n.KeyLegalAvailDefault))
	}

	flagged := plan.FilterDatasets(func(ds *dmp.Dataset) bool { return ds.LegalRestrictions })
	if len(flagged) > 0 {
		parts = append(parts, b.t(i18n.KeyLegalDataset)+" "+b.and(b.ids.DescribeAll(flagged))+".")
	}
	if comment := plan.LegalRestrictionsComment; comment != "" {
		parts = append(parts, b.t(i18n.KeyLegalComment)+" "+comment)
	}

	contact := b.t(i18n.KeyLegalRightsDefault)
	if rights := plan.DataRightsAndAccessControl; rights != "" {
		contact = rights + " " + b.t(i18n.KeyLegalRights)
	}
	body.Set(TokenLegalRestriction, strings.Join(parts, " ")+";"+contact)
}

func (b *builder) ethicalIssues(body *Replacements) {
	plan := b.plan
	text := b.t(i18n.KeyEthicalNo)
	if plan.HumanParticipants || plan.EthicalIssuesExist {
		text = b.t(i18n.KeyEthicalStatement)
	}
	if plan.CommitteeReviewed {
		text += " " + b.t(i18n.KeyEthicalReviewed)
	}
	body.Set(TokenEthicalIssues, text)
}
