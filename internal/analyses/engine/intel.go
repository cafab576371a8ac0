package engine

import "strings"

const intelNote = "Demo Mode: Company intel generated heuristically."

const (
	enterpriseHiringFocus = "Structured DSA rounds, core CS fundamentals, and consistent evaluation rubrics."
	defaultHiringFocus    = "Practical problem solving, project execution depth, and role-specific stack fluency."
)

var enterpriseCompanies = map[string]bool{
	"amazon":    true,
	"infosys":   true,
	"tcs":       true,
	"wipro":     true,
	"accenture": true,
	"cognizant": true,
	"microsoft": true,
	"google":    true,
	"ibm":       true,
	"oracle":    true,
	"deloitte":  true,
	"capgemini": true,
	"hcl":       true,
}

var midSizeCompanies = map[string]bool{
	"zoho":       true,
	"freshworks": true,
	"postman":    true,
	"razorpay":   true,
	"atlassian":  true,
	"swiggy":     true,
	"zomato":     true,
}

type industryRule struct {
	industry string
	keywords []string
}

// Order is the tie-break priority.
var industryRules = []industryRule{
	{industry: "Financial Technology", keywords: []string{"bank", "fintech", "payments"}},
	{industry: "Healthcare Technology", keywords: []string{"health", "medical", "pharma"}},
	{industry: "E-commerce Technology", keywords: []string{"ecommerce", "e-commerce", "marketplace", "retail"}},
	{industry: "Software Product", keywords: []string{"saas", "cloud", "software"}},
}

const defaultIndustry = "Technology Services"

// InferIntel classifies the company. It returns nil when company is blank.
func InferIntel(company, role, jdText string) *CompanyIntel {
	name := strings.TrimSpace(company)
	if name == "" {
		return nil
	}
	size := InferSize(name)
	focus := defaultHiringFocus
	if size == SizeEnterprise {
		focus = enterpriseHiringFocus
	}
	return &CompanyIntel{
		CompanyName:        name,
		Industry:           InferIndustry(name, role, jdText),
		SizeCategory:       size,
		TypicalHiringFocus: focus,
		Note:               intelNote,
	}
}

// InferSize maps a company name onto a size bucket using the fixed lookup sets.
func InferSize(company string) CompanySize {
	key := strings.ToLower(strings.TrimSpace(company))
	switch {
	case key == "":
		return SizeStartup
	case enterpriseCompanies[key]:
		return SizeEnterprise
	case midSizeCompanies[key]:
		return SizeMidSize
	default:
		return SizeStartup
	}
}

// InferIndustry sniffs keywords across company, role and JD text.
func InferIndustry(company, role, jdText string) string {
	text := strings.ToLower(company + " " + role + " " + jdText)
	for _, rule := range industryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.industry
			}
		}
	}
	return defaultIndustry
}

// HiringFocus returns the typical hiring focus text for a size bucket.
func HiringFocus(size CompanySize) string {
	if size == SizeEnterprise {
		return enterpriseHiringFocus
	}
	return defaultHiringFocus
}

// IntelNote is the disclosure attached to every CompanyIntel.
func IntelNote() string {
	return intelNote
}

// ValidSize reports whether size is one of the known buckets.
func ValidSize(size CompanySize) bool {
	switch size {
	case SizeStartup, SizeMidSize, SizeEnterprise:
		return true
	default:
		return false
	}
}

// ValidIndustry reports whether industry is one of the enumerable industries.
func ValidIndustry(industry string) bool {
	if industry == defaultIndustry {
		return true
	}
	for _, rule := range industryRules {
		if rule.industry == industry {
			return true
		}
	}
	return false
}
