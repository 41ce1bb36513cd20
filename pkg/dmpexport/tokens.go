package dmpexport

// Placeholder tokens filled from the DMP.
const (
	TokenProjectName          = "[projectname]"
	TokenProjectNameText      = "[projectnameText]"
	TokenAcronym              = "[acronym]"
	TokenStartDate            = "[startdate]"
	TokenEndDate              = "[enddate]"
	TokenGrantID              = "[grantid]"
	TokenProjectID            = "[projectid]"
	TokenVersionDate          = "[datever1]"
	TokenContact              = "[contact]"
	TokenCoordinator          = "[coordinator]"
	TokenContributors         = "[contributors]"
	TokenDataGeneration       = "[datageneration]"
	TokenDocumentation        = "[documentation]"
	TokenTargetAudience       = "[targetaudience]"
	TokenStorage              = "[storage]"
	TokenMetadata             = "[metadata]"
	TokenDataOrganisation     = "[dataorganisation]"
	TokenDataQualityControl   = "[dataqualitycontrol]"
	TokenSensitiveData        = "[sensitivedata]"
	TokenRepoInformation      = "[repoinformation]"
	TokenTools                = "[tools]"
	TokenRestrictedAccessInfo = "[restrictedAccessInfo]"
	TokenPersonalData         = "[personaldata]"
	TokenLegalRestriction     = "[legalrestriction]"
	TokenEthicalIssues        = "[ethicalissues]"
	TokenCosts                = "[costs]"
	TokenCostCurrency         = "[costcurrency]"
	TokenCostTotal            = "[costtotal]"
)

// BodyTokens is the vocabulary of the document body, in the order the
// replacements are applied.
var BodyTokens = []string{
	TokenProjectName, TokenProjectNameText, TokenAcronym, TokenStartDate, TokenEndDate,
	TokenGrantID, TokenProjectID, TokenVersionDate,
	TokenContact, TokenCoordinator, TokenContributors,
	TokenDataGeneration, TokenDocumentation, TokenTargetAudience,
	TokenStorage, TokenMetadata, TokenDataOrganisation, TokenDataQualityControl,
	TokenSensitiveData, TokenRepoInformation, TokenTools, TokenRestrictedAccessInfo,
	TokenPersonalData, TokenLegalRestriction, TokenEthicalIssues,
	TokenCosts, TokenCostCurrency, TokenCostTotal,
}

// FooterTokens is the vocabulary of headers and footers.
var FooterTokens = []string{TokenProjectNameText, TokenAcronym, TokenGrantID}
