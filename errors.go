// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import "github.com/pkg/errors"

// Errors reported by the constructors. Ill-formed inputs are caller mistakes
// and are rejected with an error; the engine itself never returns a partial
// result.
var (
	// ErrSettings marks analysis settings the engine cannot work with.
	ErrSettings = errors.New("invalid analysis settings")

	// ErrInvalidGraph marks a Boolean graph that violates the input
	// contract: gate types other than AND/OR after preprocessing, unpushed
	// gate complements, unknown argument indices, and the like.
	ErrInvalidGraph = errors.New("invalid Boolean graph")

	// ErrInvalidBDD marks an ill-formed ROBDD input.
	ErrInvalidBDD = errors.New("invalid BDD input")

	// ErrInvalidModules marks a module composition where a container refers
	// to a module that does not precede it.
	ErrInvalidModules = errors.New("invalid module composition")
)
