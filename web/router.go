package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Praneshv25/KMSFL-Data/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, log logrus.FieldLogger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(withLogger(log))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/seasons", seasonsHandler(ctrl, render))
		r.Get("/teams", teamsHandler(ctrl, render))
		r.Get("/champions", championsHandler(ctrl, render))
		r.Get("/draft", draftHandler(ctrl, render))
		r.Get("/transactions", transactionsHandler(ctrl, render))

		r.Route("/matchups", func(r chi.Router) {
			r.Get("/", matchupsHandler(ctrl, render))
			r.Get("/{year:\\d+}/{week:\\d+}/{matchupID:\\d+}/roster", rosterHandler(ctrl, render))
		})

		r.Get("/managers", managersHandler(ctrl, render))
		r.Get("/manager/{name}", managerHandler(ctrl, render))
		r.Get("/records", recordsHandler(ctrl, render))
		r.Get("/h2h", headToHeadHandler(ctrl, render))
		r.Get("/rivalries/{name}", rivalriesHandler(ctrl, render))
		r.Get("/weekly/{name}", weeklyHandler(ctrl, render))
		r.Get("/luck", luckHandler(ctrl, render))
		r.Get("/scores", scoresHandler(ctrl, render))

		r.Get("/ingest/runs", ingestRunsHandler(ctrl, render))
	})

	return r
}

type loggerKey struct{}

// withLogger makes log available to the handlers, tagged with the request id.
func withLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"path":       r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey{}, entry)))
		})
	}
}

func requestLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(loggerKey{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}
