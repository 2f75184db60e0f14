package types

import (
	"time"

	"github.com/google/uuid"
)

// TuitionRange is a yearly tuition band in a single currency.
type TuitionRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// Average returns the midpoint of the range.
func (t TuitionRange) Average() float64 {
	return (t.Min + t.Max) / 2
}

// UniversityCost groups the cost figures for a university.
type UniversityCost struct {
	TuitionPerYear TuitionRange  `json:"tuitionPerYear"`
	LivingPerYear  *TuitionRange `json:"livingPerYear,omitempty"`
}

// Ranking holds world and national rank positions when known.
type Ranking struct {
	World    *int `json:"world,omitempty"`
	National *int `json:"national,omitempty"`
}

// Program is a degree program offered by a university.
type Program struct {
	Name     string      `json:"name,omitempty"`
	Degree   DegreeLevel `json:"degree,omitempty"`
	Field    string      `json:"field,omitempty"`
	Duration string      `json:"duration,omitempty"`
}

// University is a catalog row. AcceptanceRate is optional; the
// matching pipeline substitutes 50 when it is absent.
type University struct {
	ID      uuid.UUID `json:"id,omitempty"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	City    string    `json:"city,omitempty"`
	State   string    `json:"state,omitempty"`
	Website string    `json:"website,omitempty"`
	Logo    string    `json:"logo,omitempty"`

	Ranking        Ranking        `json:"ranking"`
	Programs       []Program      `json:"programs,omitempty"`
	PopularFields  []string       `json:"popularFields,omitempty"`
	AcceptanceRate *float64       `json:"acceptanceRate,omitempty"` // 0-100
	Cost           UniversityCost `json:"cost"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// DefaultAcceptanceRate is assumed when a catalog row carries no rate.
const DefaultAcceptanceRate = 50.0

// AcceptanceRateOrDefault returns the acceptance rate, defaulting to
// DefaultAcceptanceRate when absent.
func (u *University) AcceptanceRateOrDefault() float64 {
	if u.AcceptanceRate == nil {
		return DefaultAcceptanceRate
	}
	return *u.AcceptanceRate
}
