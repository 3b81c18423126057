package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

type FakeSleeperServer struct {
	s        *httptest.Server
	requests atomic.Int32
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.nflPlayersHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

// Requests is the number of player dumps served so far.
func (f *FakeSleeperServer) Requests() int {
	return int(f.requests.Load())
}

func (f *FakeSleeperServer) nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	serveFile(w, "players.json")
}

// SleeperPlayers returns the player dump served by the fake server.
func SleeperPlayers() []byte {
	b, err := sleeperdata.ReadFile("sleeperdata/players.json")
	if err != nil {
		log.Fatalf("error reading embedded players: %v", err)
	}
	return b
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
