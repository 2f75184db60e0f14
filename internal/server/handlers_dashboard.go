package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/akshay/uni-counsellor/internal/types"
)

// DashboardResponse is the single-call summary the frontend renders on
// its home screen.
type DashboardResponse struct {
	Profile        *types.StudentProfile `json:"profile"`
	Stage          types.Stage           `json:"stage"`
	ShortlistStats *types.ShortlistStats `json:"shortlistStats"`
	ActiveLocks    int                   `json:"activeLocks"`
	TaskStats      *types.TaskStats      `json:"taskStats"`
	UpcomingTasks  []types.Task          `json:"upcomingTasks"`
}

// handleDashboard aggregates profile, shortlist, lock and task state.
// The independent queries are fanned out concurrently.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var resp DashboardResponse
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		profile, err := s.db.GetProfile(ctx, userID)
		if err != nil {
			return err
		}
		resp.Profile = profile
		resp.Stage = types.StageBuildingProfile
		if profile != nil && profile.CurrentStage != "" {
			resp.Stage = profile.CurrentStage
		}
		return nil
	})
	g.Go(func() error {
		stats, err := s.db.GetShortlistStats(ctx, userID)
		if err != nil {
			return err
		}
		resp.ShortlistStats = stats
		return nil
	})
	g.Go(func() error {
		count, err := s.db.CountActiveLocks(ctx, userID)
		if err != nil {
			return err
		}
		resp.ActiveLocks = count
		return nil
	})
	g.Go(func() error {
		stats, err := s.db.GetTaskStats(ctx, userID)
		if err != nil {
			return err
		}
		resp.TaskStats = stats
		return nil
	})
	g.Go(func() error {
		tasks, err := s.db.ListPendingTasks(ctx, userID, 5)
		if err != nil {
			return err
		}
		resp.UpcomingTasks = tasks
		return nil
	})

	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}
