package server

import (
	"net/http"
	"strconv"

	"github.com/akshay/uni-counsellor/internal/db"
	"github.com/akshay/uni-counsellor/internal/matching"
	"github.com/akshay/uni-counsellor/internal/types"
)

// UniversityListResponse is a paginated catalog page.
type UniversityListResponse struct {
	Universities []types.University `json:"universities"`
	Total        int                `json:"total"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
}

// handleListUniversities lists the catalog with filters and pagination.
func (s *Server) handleListUniversities(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	q := r.URL.Query()
	filters := db.UniversityFilters{
		Country: q.Get("country"),
		Degree:  types.DegreeLevel(q.Get("degree")),
		Field:   q.Get("field"),
		Page:    queryInt(q.Get("page"), 1),
		Limit:   queryInt(q.Get("limit"), 20),
	}
	if v := q.Get("minCost"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinCost = f
		}
	}
	if v := q.Get("maxCost"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxCost = f
		}
	}

	universities, total, err := s.db.ListUniversities(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, UniversityListResponse{
		Universities: universities,
		Total:        total,
		Page:         filters.Page,
		Limit:        filters.Limit,
	})
}

// handleSearchUniversities searches by name, country or city.
func (s *Server) handleSearchUniversities(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	term := r.URL.Query().Get("q")
	if term == "" {
		s.errorResponse(w, http.StatusBadRequest, "Search query is required")
		return
	}

	universities, err := s.db.SearchUniversities(r.Context(), term, queryInt(r.URL.Query().Get("limit"), 20))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, universities)
}

// handleListCountries lists distinct catalog countries.
func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	countries, err := s.db.ListCountries(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, countries)
}

// handleMatchedUniversities runs the deterministic matching pipeline
// over the candidate query. Requires a completed profile.
func (s *Server) handleMatchedUniversities(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil || !profile.IsOnboardingComplete {
		err := &ErrProfileIncomplete{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidates, err := s.db.CandidatesForProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matching.MatchCandidates(profile, candidates))
}

// handleGetUniversity returns one catalog row by ID.
func (s *Server) handleGetUniversity(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	university, err := s.db.GetUniversity(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if university == nil {
		s.errorResponse(w, http.StatusNotFound, "University not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, university)
}

func queryInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
