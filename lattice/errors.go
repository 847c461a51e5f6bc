package lattice

import "errors"

var (
	// ErrRangeOutOfBounds indicates a subrange request exceeded the input bounds.
	ErrRangeOutOfBounds = errors.New("lattice: range out of bounds")

	// ErrMismatchConcreteType indicates an append across different input implementations.
	ErrMismatchConcreteType = errors.New("lattice: mismatch concrete type")

	// ErrBosOrEosEntryNotAllowed indicates the BOS/EOS sentinel was used where a
	// middle entry with a key is required.
	ErrBosOrEosEntryNotAllowed = errors.New("lattice: BOS or EOS entry is not allowed")

	// ErrStepIsTooLarge indicates an out-of-range graph step index.
	ErrStepIsTooLarge = errors.New("lattice: the step is too large")

	// ErrNoNodeIsFoundForTheInput indicates an input segment produced no
	// candidate nodes at any step.
	ErrNoNodeIsFoundForTheInput = errors.New("lattice: no node is found for the input")

	// ErrNoInput indicates the lattice was settled before any input was pushed.
	ErrNoInput = errors.New("lattice: no input")
)
