package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Praneshv25/KMSFL-Data/controller"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/render"
)

type Server struct {
	server *http.Server
	log    logrus.FieldLogger
}

func NewServer(port int, ctrl controller.C, log logrus.FieldLogger) (*Server, error) {
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	log = log.WithField("component", "web")

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           getRouter(ctrl, newRender(), log),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) error {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.log.WithError(err).Error("error shutting down server")
		}
	}()

	s.log.WithField("addr", s.server.Addr).Info("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error with server: %w", err)
	}
	return nil
}

func newRender() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}
