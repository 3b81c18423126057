package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const SleeperURL = "https://api.sleeper.app"

type Client interface {
	// DownloadPlayers streams the raw players/nfl dump to w.
	DownloadPlayers(ctx context.Context, w io.Writer) error
	LoadDirectory(ctx context.Context) (Directory, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New(url string) Client {
	if url == "" {
		url = SleeperURL
	}
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		httpClient: http.DefaultClient,
	}
}

func (c *client) DownloadPlayers(ctx context.Context, w io.Writer) error {
	body, err := c.get(ctx, "/v1/players/nfl")
	if err != nil {
		return err
	}
	defer body.Close()

	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("error reading response from sleeper: %w", err)
	}
	return nil
}

func (c *client) LoadDirectory(ctx context.Context) (Directory, error) {
	body, err := c.get(ctx, "/v1/players/nfl")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return LoadDirectory(body)
}

func (c *client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
