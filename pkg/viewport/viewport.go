// Package viewport models the drawable area a layout targets and the
// settling loop that waits for its dimensions to stop changing.
package viewport

import (
	"context"
	"time"

	"github.com/mfbx9da4/meanwhile/pkg/errors"
)

// Orientation classifies a viewport by aspect.
type Orientation string

const (
	// Landscape means width exceeds height.
	Landscape Orientation = "landscape"
	// Portrait means height is at least width.
	Portrait Orientation = "portrait"
)

// MinDimension is the smallest usable width or height in pixels.
const MinDimension = 64.0

// Viewport is a drawable area in CSS pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Orientation returns Landscape when width strictly exceeds height,
// Portrait otherwise. Square viewports are portrait.
func (v Viewport) Orientation() Orientation {
	if v.Width > v.Height {
		return Landscape
	}
	return Portrait
}

// Validate checks that both dimensions are usable.
func (v Viewport) Validate() error {
	if v.Width < MinDimension || v.Height < MinDimension {
		return errors.New(errors.ErrCodeInvalidViewport,
			"viewport %gx%g is below the %g pixel minimum", v.Width, v.Height, MinDimension)
	}
	return nil
}

// Clamp raises either dimension to MinDimension.
func (v Viewport) Clamp() Viewport {
	if v.Width < MinDimension {
		v.Width = MinDimension
	}
	if v.Height < MinDimension {
		v.Height = MinDimension
	}
	return v
}

// SettleOptions tunes the Settle loop.
type SettleOptions struct {
	// Interval is the delay between samples. Defaults to 50ms.
	Interval time.Duration
	// MaxWait bounds the whole loop. Defaults to 2s.
	MaxWait time.Duration
}

func (o *SettleOptions) setDefaults() {
	if o.Interval <= 0 {
		o.Interval = 50 * time.Millisecond
	}
	if o.MaxWait <= 0 {
		o.MaxWait = 2 * time.Second
	}
}

// Settle polls sample until two consecutive reads agree, then returns
// the stable viewport. Hosts report transient dimensions while their
// chrome animates in; laying out against those produces a flash of a
// wrongly sized grid. If the deadline passes the last sample is
// returned along with a timeout error, so callers can still render.
func Settle(ctx context.Context, sample func() Viewport, opts SettleOptions) (Viewport, error) {
	opts.setDefaults()

	ctx, cancel := context.WithTimeout(ctx, opts.MaxWait)
	defer cancel()

	last := sample()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return last, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "viewport did not settle")
		case <-ticker.C:
			cur := sample()
			if cur == last {
				return cur, nil
			}
			last = cur
		}
	}
}
