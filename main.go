package main

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "kmsfl",
		Short:        "KMSFL league history: ingest season exports and serve the stats API",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(directoryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
