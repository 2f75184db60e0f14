package types

// Chance is the coarse estimate of a student's admission odds at a
// university.
type Chance string

const (
	ChanceLow    Chance = "Low"
	ChanceMedium Chance = "Medium"
	ChanceHigh   Chance = "High"
)

// Category buckets a university relative to the student's profile.
type Category string

const (
	CategoryDream  Category = "Dream"
	CategoryTarget Category = "Target"
	CategorySafe   Category = "Safe"
)

// CostLevel relates a university's tuition to the student's budget.
type CostLevel string

const (
	CostLow    CostLevel = "Low"
	CostMedium CostLevel = "Medium"
	CostHigh   CostLevel = "High"
)

// MatchResult is the deterministic pipeline's verdict for one
// candidate. Constructed fresh on every matching request, never
// cached, immutable once returned.
type MatchResult struct {
	University       University `json:"university"`
	AcceptanceChance Chance     `json:"acceptanceChance"`
	Category         Category   `json:"category"`
	CostLevel        CostLevel  `json:"costLevel"`
	Risks            []string   `json:"risks"`
	MatchScore       int        `json:"matchScore"`
}

// Recommendation is produced by the generative path. It carries the
// same shape of verdict as MatchResult but originates from the LLM's
// free-text output; the two paths are not reconciled with each other.
type Recommendation struct {
	UniversityName   string    `json:"universityName"`
	Category         Category  `json:"category"`
	AcceptanceChance Chance    `json:"acceptanceChance"`
	FitReason        string    `json:"fitReason"`
	Risks            []string  `json:"risks"`
	CostLevel        CostLevel `json:"costLevel"`

	// University is filled in when the name reconciles against the
	// candidate catalog; recommendations that do not reconcile are
	// dropped before this struct reaches a caller.
	University *University `json:"universityData,omitempty"`
}
