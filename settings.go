// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import "github.com/pkg/errors"

// Settings carries the analysis parameters recognized by the cut-set engine.
type Settings struct {
	// LimitOrder is the maximum cardinality of a reported cut set. It must
	// be positive. The limit also prunes intermediate computations, but only
	// as a best effort; the guarantee holds on the generated cut sets.
	LimitOrder int
}

func (s Settings) validate() error {
	if s.LimitOrder < 1 {
		return errors.Wrapf(ErrSettings, "limit order must be positive, got %d", s.LimitOrder)
	}
	return nil
}
