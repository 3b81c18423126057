package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/controller"
	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

func rootHandler(_ controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Text(w, http.StatusOK, "kmsfl data api")
	}
}

func seasonsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := ctrl.GetSeasons(r.Context())
		respond(w, r, render, seasons, err)
	}
}

func teamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", true)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		teams, err := ctrl.GetTeams(r.Context(), year)
		respond(w, r, render, teams, err)
	}
}

func championsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		champions, err := ctrl.GetChampions(r.Context())
		respond(w, r, render, champions, err)
	}
}

func matchupsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", true)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		week, err := queryInt(r, "week", false)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		matchups, err := ctrl.GetMatchups(r.Context(), year, week)
		respond(w, r, render, matchups, err)
	}
}

func rosterHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The route only matches digits.
		year, _ := strconv.Atoi(chi.URLParam(r, "year"))
		week, _ := strconv.Atoi(chi.URLParam(r, "week"))
		matchupID, _ := strconv.Atoi(chi.URLParam(r, "matchupID"))

		roster, err := ctrl.GetMatchupRoster(r.Context(), year, week, matchupID)
		respond(w, r, render, roster, err)
	}
}

func managersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		managers, err := ctrl.GetManagers(r.Context())
		respond(w, r, render, managers, err)
	}
}

func managerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := ctrl.GetManager(r.Context(), chi.URLParam(r, "name"))
		respond(w, r, render, m, err)
	}
}

func draftHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", true)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		draft, err := ctrl.GetDraft(r.Context(), year)
		respond(w, r, render, draft, err)
	}
}

func transactionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", true)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		txns, err := ctrl.GetTransactions(r.Context(), year)
		respond(w, r, render, txns, err)
	}
}

func recordsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := ctrl.GetRecords(r.Context())
		respond(w, r, render, records, err)
	}
}

func headToHeadHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		h2h, err := ctrl.GetHeadToHead(r.Context(), q.Get("a"), q.Get("b"))
		respond(w, r, render, h2h, err)
	}
}

func rivalriesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rivalries, err := ctrl.GetRivalries(r.Context(), chi.URLParam(r, "name"))
		respond(w, r, render, rivalries, err)
	}
}

func weeklyHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := ctrl.GetWeeklyResults(r.Context(), chi.URLParam(r, "name"))
		respond(w, r, render, results, err)
	}
}

func luckHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		luck, err := ctrl.GetLuckRankings(r.Context())
		respond(w, r, render, luck, err)
	}
}

func scoresHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := queryInt(r, "year", true)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		scores, err := ctrl.GetWeeklyScores(r.Context(), year, r.URL.Query().Get("manager"))
		respond(w, r, render, scores, err)
	}
}

func ingestRunsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", false)
		if err != nil {
			badRequest(w, render, err)
			return
		}
		runs, err := ctrl.GetIngestRuns(r.Context(), limit)
		respond(w, r, render, runs, err)
	}
}

// respond renders v as JSON, or the error with a status matching its kind.
func respond(w http.ResponseWriter, r *http.Request, render *render.Render, v any, err error) {
	if err == nil {
		render.JSON(w, http.StatusOK, v)
		return
	}

	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the log.
		requestLogger(r).WithError(err).Error("request failed")
		msg = http.StatusText(status)
	}
	render.JSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analytics.ErrManagerNotFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controller.ErrInvalidArgument), errors.Is(err, controller.ErrUnsupportedPlatform):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, render *render.Render, err error) {
	render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// queryInt parses a positive integer query parameter. A missing optional
// parameter is 0.
func queryInt(r *http.Request, name string, required bool) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		if required {
			return 0, fmt.Errorf("%s parameter must be provided", name)
		}
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s parameter must be a positive number, got: %s", name, v)
	}
	return n, nil
}
