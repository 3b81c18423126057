package mocksleeper

import (
	"context"
	"io"

	"github.com/Praneshv25/KMSFL-Data/sleeper"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) DownloadPlayers(ctx context.Context, w io.Writer) error {
	args := c.Called(ctx, w)
	return args.Error(0)
}

func (c *Client) LoadDirectory(ctx context.Context) (sleeper.Directory, error) {
	args := c.Called(ctx)

	var res sleeper.Directory
	if args.Get(0) != nil {
		res = args.Get(0).(sleeper.Directory)
	}

	return res, args.Error(1)
}
