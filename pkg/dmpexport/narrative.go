package dmpexport

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/benjaminschreck/go-dmpexport/pkg/dmp"
	"github.com/benjaminschreck/go-dmpexport/pkg/i18n"
)

// ReplacementSet holds the two mappings of one export.
type ReplacementSet struct {
	Body   *Replacements
	Footer *Replacements
}

// builder assembles replacements for one DMP. The first localization
// failure is kept in err and stops the build.
type builder struct {
	ctx     context.Context
	plan    *dmp.DMP
	ids     DisplayIDs
	loc     Localizer
	lookups Lookups
	cfg     *Config
	log     *Logger
	err     error
}

// BuildReplacements produces the body and footer mappings for plan. Every
// token of BodyTokens and FooterTokens receives a value. It fails when
// plan has not been resolved or a narrative key cannot be resolved.
func BuildReplacements(ctx context.Context, plan *dmp.DMP, loc Localizer, lookups Lookups, cfg *Config, log *Logger) (*ReplacementSet, error) {
	if err := checkPlan(plan); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = GetLogger()
	}
	b := &builder{
		ctx:     ctx,
		plan:    plan,
		ids:     AssignDisplayIDs(plan),
		loc:     loc,
		lookups: lookups,
		cfg:     cfg,
		log:     log.WithField("dmp_id", plan.ID),
	}

	set := &ReplacementSet{Body: NewReplacements(), Footer: NewReplacements()}
	b.titlePage(set.Body, set.Footer)
	b.people(set.Body)
	b.datasetNarrative(set.Body)
	b.storage(set.Body)
	b.metadata(set.Body)
	b.dataQuality(set.Body)
	b.sensitiveData(set.Body)
	b.repositories(set.Body)
	b.access(set.Body)
	b.personalData(set.Body)
	b.legalRestrictions(set.Body)
	b.ethicalIssues(set.Body)
	b.costs(set.Body)
	if b.err != nil {
		return nil, b.err
	}
	return set, nil
}

// t returns the phrase for key, recording the first lookup failure.
func (b *builder) t(key string) string {
	phrase, err := b.loc.Lookup(key)
	if err != nil {
		if b.err == nil {
			b.err = WithContext(err, "building replacements", map[string]interface{}{"key": key})
		}
		return ""
	}
	return phrase
}

func (b *builder) and(items []string) string {
	return JoinWithAnd(items, b.t(i18n.KeyAnd))
}

func (b *builder) titlePage(body, footer *Replacements) {
	body.Set(TokenVersionDate, versionDate(b.plan))

	project := b.plan.Project
	if project == nil {
		for _, token := range []string{TokenProjectName, TokenProjectNameText, TokenAcronym, TokenStartDate, TokenEndDate, TokenGrantID, TokenProjectID} {
			body.Set(token, "")
		}
		for _, token := range FooterTokens {
			footer.Set(token, "")
		}
		return
	}

	info := b.projectInfo(project.UniversityID)

	body.Set(TokenProjectName, project.Title)
	body.Set(TokenProjectNameText, project.Title)
	footer.Set(TokenProjectNameText, project.Title)

	body.Set(TokenAcronym, info.Acronym)
	footer.Set(TokenAcronym, info.Acronym)

	body.Set(TokenStartDate, FormatDate(project.Start))
	body.Set(TokenEndDate, FormatDate(project.End))

	var grant []string
	if info.FundingProgram != "" {
		grant = append(grant, info.FundingProgram)
	}
	if project.GrantID != "" {
		grant = append(grant, project.GrantID)
	}
	body.Set(TokenGrantID, JoinWithComma(grant))
	footer.Set(TokenGrantID, JoinWithComma(grant))

	body.Set(TokenProjectID, project.UniversityID)
}

func versionDate(plan *dmp.DMP) string {
	if plan.Modified != nil {
		return FormatDate(plan.Modified)
	}
	return FormatDate(plan.Created)
}

// projectInfo asks the registry about a project. Failures degrade to an
// empty result.
func (b *builder) projectInfo(universityID string) ProjectInfo {
	if universityID == "" || b.lookups.Projects == nil {
		return ProjectInfo{}
	}
	info, err := b.lookups.Projects.Project(b.ctx, universityID)
	if err != nil {
		b.log.WithField("university_id", universityID).WarnErr(err, "project registry lookup failed")
		return ProjectInfo{}
	}
	if info == nil {
		return ProjectInfo{}
	}
	return *info
}

func (b *builder) people(body *Replacements) {
	body.Set(TokenContact, personBlock(b.plan.Contact))
	body.Set(TokenCoordinator, personBlock(b.coordinator()))

	var blocks []string
	for i := range b.plan.Contributors {
		c := &b.plan.Contributors[i]
		block := personBlock(&c.Person)
		if c.Role != "" {
			block = JoinWithComma(nonEmpty(block, c.Role))
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	body.Set(TokenContributors, strings.Join(blocks, ";"))
}

// coordinator returns the dedicated coordinator, or the first contributor
// holding a coordinator role.
func (b *builder) coordinator() *dmp.Person {
	if b.plan.Coordinator != nil {
		return b.plan.Coordinator
	}
	for i := range b.plan.Contributors {
		c := &b.plan.Contributors[i]
		for _, role := range b.cfg.CoordinatorRoles {
			if c.Role == role {
				return &c.Person
			}
		}
	}
	return nil
}

// personBlock lists name, e-mail, identifier, affiliation and affiliation
// identifier, leaving out each one that is missing. Only ORCID person
// identifiers and ROR affiliation identifiers are listed.
func personBlock(p *dmp.Person) string {
	if p == nil {
		return ""
	}
	props := nonEmpty(p.Name(), p.Mbox)
	if id := p.PersonID; id != nil && id.Identifier != "" && id.Type == "orcid" {
		props = append(props, "ORCID iD: "+id.Identifier)
	}
	if p.Affiliation != "" {
		props = append(props, p.Affiliation)
	}
	if id := p.AffiliationID; id != nil && id.Identifier != "" && id.Type == "ror" {
		props = append(props, "ROR: "+id.Identifier)
	}
	return JoinWithComma(props)
}

func (b *builder) costs(body *Replacements) {
	if b.plan.CostsExist {
		body.Set(TokenCosts, b.t(i18n.KeyCostsAvail))
	} else {
		body.Set(TokenCosts, b.t(i18n.KeyCostsNo))
	}

	summary := SummarizeCosts(b.plan.Costs)
	body.Set(TokenCostCurrency, summary.Currency)
	body.Set(TokenCostTotal, FormatAmount(summary.Total))
}

// CostSummary is the derived total of a DMP's costs.
type CostSummary struct {
	Total    decimal.Decimal
	Currency string
}

// SummarizeCosts adds up all cost values exactly. The currency is the
// first one encountered in list order.
func SummarizeCosts(costs []dmp.Cost) CostSummary {
	summary := CostSummary{Total: decimal.Zero}
	for _, c := range costs {
		if summary.Currency == "" && c.CurrencyCode != "" {
			summary.Currency = c.CurrencyCode
		}
		if c.Value != nil {
			summary.Total = summary.Total.Add(*c.Value)
		}
	}
	return summary
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
