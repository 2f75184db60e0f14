// Package types provides type definitions for structured data used throughout the counsellor system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DegreeLevel is the degree a student intends to pursue.
type DegreeLevel string

// Degree levels supported by the catalog.
const (
	DegreeBachelors DegreeLevel = "Bachelor's"
	DegreeMasters   DegreeLevel = "Master's"
	DegreeMBA       DegreeLevel = "MBA"
	DegreePhD       DegreeLevel = "PhD"
)

// TestStatus tracks progress on an English or standardized test.
type TestStatus string

const (
	TestNotStarted TestStatus = "Not Started"
	TestScheduled  TestStatus = "Scheduled"
	TestCompleted  TestStatus = "Completed"
)

// SOPStatus tracks the statement of purpose.
type SOPStatus string

const (
	SOPNotStarted SOPStatus = "Not Started"
	SOPDraft      SOPStatus = "Draft"
	SOPReview     SOPStatus = "Review"
	SOPReady      SOPStatus = "Ready"
)

// LORStatus tracks letters of recommendation.
type LORStatus string

const (
	LORNotStarted LORStatus = "Not Started"
	LORInProgress LORStatus = "In Progress"
	LORCompleted  LORStatus = "Completed"
)

// Stage is the student's position in the application journey.
// Stages advance in order; CRUD operations on shortlists and locks
// trigger the transitions.
type Stage string

const (
	StageBuildingProfile Stage = "Building Profile"
	StageDiscovering     Stage = "Discovering Universities"
	StageFinalizing      Stage = "Finalizing Universities"
	StagePreparing       Stage = "Preparing Applications"
)

// BudgetRange is a yearly budget in a single currency.
// Currency is advisory only; no conversion is performed.
type BudgetRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// TestRecord describes a single exam (IELTS, TOEFL, GRE, ...).
type TestRecord struct {
	Type     string     `json:"type,omitempty"`
	Status   TestStatus `json:"status,omitempty"`
	Score    *float64   `json:"score,omitempty"`
	TestDate *time.Time `json:"testDate,omitempty"`
}

// Completed reports whether the test has been taken. A nil record
// counts as not completed.
func (t *TestRecord) Completed() bool {
	return t != nil && t.Status == TestCompleted
}

// WorkExperience describes professional background.
type WorkExperience struct {
	HasExperience bool    `json:"hasExperience"`
	Years         float64 `json:"years,omitempty"`
	Field         string  `json:"field,omitempty"`
}

// ProfileStrength is the precomputed readiness composite. Overall is
// round(academic*0.4 + exam*0.3 + document*0.3) where each sub-score
// is a step function of the underlying profile fields.
type ProfileStrength struct {
	Overall  int `json:"overall"`
	Academic int `json:"academic"`
	Exam     int `json:"exam"`
	Document int `json:"document"`
}

// StudentProfile is the onboarding document for a student. Optional
// academic fields are pointers; a nil field defaults to zero in the
// matching pipeline rather than being rejected.
type StudentProfile struct {
	UserID uuid.UUID `json:"userId,omitempty"`

	// Academic background
	CurrentEducationLevel string   `json:"currentEducationLevel,omitempty"`
	Degree                string   `json:"degree,omitempty"`
	Major                 string   `json:"major,omitempty"`
	GraduationYear        int      `json:"graduationYear,omitempty"`
	GPA                   *float64 `json:"gpa,omitempty"`        // 0-10 scale, preferred
	Percentage            *float64 `json:"percentage,omitempty"` // 0-100, used when GPA absent

	// Study goals
	IntendedDegree     DegreeLevel `json:"intendedDegree,omitempty"`
	FieldOfStudy       string      `json:"fieldOfStudy,omitempty"`
	TargetIntakeYear   int         `json:"targetIntakeYear,omitempty"`
	TargetIntakeSeason string      `json:"targetIntakeSeason,omitempty"`
	PreferredCountries []string    `json:"preferredCountries,omitempty"`

	// Budget
	BudgetPerYear BudgetRange `json:"budgetPerYear"`
	FundingPlan   string      `json:"fundingPlan,omitempty"`

	// Exams and readiness
	EnglishTest      *TestRecord `json:"englishTest,omitempty"`
	StandardizedTest *TestRecord `json:"standardizedTest,omitempty"`
	SOPStatus        SOPStatus   `json:"sopStatus,omitempty"`
	LORStatus        LORStatus   `json:"lorStatus,omitempty"`

	// Additional information
	WorkExperience *WorkExperience `json:"workExperience,omitempty"`

	// Completion and derived state
	IsOnboardingComplete bool            `json:"isOnboardingComplete"`
	ProfileStrength      ProfileStrength `json:"profileStrength"`
	CurrentStage         Stage           `json:"currentStage,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// AcademicPercent returns the academic score on a 0-100 scale, taking
// GPA (out of 10) when present, else percentage, else 0. A zero GPA is
// treated as absent, not as a score of zero.
func (p *StudentProfile) AcademicPercent() float64 {
	if p.GPA != nil && *p.GPA > 0 {
		return *p.GPA / 10 * 100
	}
	if p.Percentage != nil {
		return *p.Percentage
	}
	return 0
}

// SaveProfileRequest is the onboarding/update payload for a profile.
type SaveProfileRequest struct {
	CurrentEducationLevel string   `json:"currentEducationLevel" validate:"required"`
	Degree                string   `json:"degree" validate:"required"`
	Major                 string   `json:"major" validate:"required"`
	GraduationYear        int      `json:"graduationYear" validate:"required"`
	GPA                   *float64 `json:"gpa,omitempty" validate:"omitempty,min=0,max=10"`
	Percentage            *float64 `json:"percentage,omitempty" validate:"omitempty,min=0,max=100"`

	IntendedDegree     DegreeLevel `json:"intendedDegree" validate:"required,oneof=Bachelor's Master's MBA PhD"`
	FieldOfStudy       string      `json:"fieldOfStudy" validate:"required"`
	TargetIntakeYear   int         `json:"targetIntakeYear" validate:"required"`
	TargetIntakeSeason string      `json:"targetIntakeSeason" validate:"required,oneof=Spring Fall Summer Winter"`
	PreferredCountries []string    `json:"preferredCountries" validate:"required,min=1"`

	BudgetPerYear BudgetRange `json:"budgetPerYear" validate:"required"`
	FundingPlan   string      `json:"fundingPlan,omitempty"`

	EnglishTest      *TestRecord `json:"englishTest,omitempty"`
	StandardizedTest *TestRecord `json:"standardizedTest,omitempty"`
	SOPStatus        SOPStatus   `json:"sopStatus,omitempty"`
	LORStatus        LORStatus   `json:"lorStatus,omitempty"`

	WorkExperience *WorkExperience `json:"workExperience,omitempty"`
}

// Validate validates the SaveProfileRequest using the validator.
func (r *SaveProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ToProfile converts the request into a StudentProfile document.
func (r *SaveProfileRequest) ToProfile() *StudentProfile {
	sop := r.SOPStatus
	if sop == "" {
		sop = SOPNotStarted
	}
	lor := r.LORStatus
	if lor == "" {
		lor = LORNotStarted
	}
	return &StudentProfile{
		CurrentEducationLevel: r.CurrentEducationLevel,
		Degree:                r.Degree,
		Major:                 r.Major,
		GraduationYear:        r.GraduationYear,
		GPA:                   r.GPA,
		Percentage:            r.Percentage,
		IntendedDegree:        r.IntendedDegree,
		FieldOfStudy:          r.FieldOfStudy,
		TargetIntakeYear:      r.TargetIntakeYear,
		TargetIntakeSeason:    r.TargetIntakeSeason,
		PreferredCountries:    r.PreferredCountries,
		BudgetPerYear:         r.BudgetPerYear,
		FundingPlan:           r.FundingPlan,
		EnglishTest:           r.EnglishTest,
		StandardizedTest:      r.StandardizedTest,
		SOPStatus:             sop,
		LORStatus:             lor,
		WorkExperience:        r.WorkExperience,
	}
}
