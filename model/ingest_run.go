package model

import (
	"time"

	"github.com/google/uuid"
)

// IngestRun records one ingestion of a season into the store.
type IngestRun struct {
	ID       uuid.UUID `json:"id"`
	LeagueID string    `json:"league_id"`
	Year     int       `json:"year"`
	Platform Platform  `json:"platform"`
	Inserted int       `json:"inserted"`
	Updated  int       `json:"updated"`
	Errors   int       `json:"errors"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Success  bool      `json:"success"`
	// Set when the run was aborted.
	Error string `json:"error,omitempty"`
}

func (r *IngestRun) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
