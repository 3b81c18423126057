package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/Praneshv25/KMSFL-Data/model"
)

// sourceAdapter turns one platform's raw season export into the canonical
// model. This is internal to the controller package.
type sourceAdapter interface {
	normalize(ctx context.Context, r io.Reader) (*model.Season, error)
}

func getSourceAdapter(platform model.Platform, c *controller) sourceAdapter {
	switch platform {
	case model.PlatformLegacy:
		return &legacyAdapter{c}
	case model.PlatformModern:
		return &sleeperAdapter{c}
	default:
		return &nilSourceAdapter{err: fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)}
	}
}

// nilSourceAdapter exists so that we can always return an adapter and simplify
// the usage. It eliminates the need for an extra error check.
type nilSourceAdapter struct {
	err error
}

func (a *nilSourceAdapter) normalize(ctx context.Context, r io.Reader) (*model.Season, error) {
	return nil, a.err
}
