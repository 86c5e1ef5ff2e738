// Package vgerr collects the sentinel error kinds shared by the graph,
// graphbuild, gdef, sim and align packages. Callers should test for a
// specific kind with errors.Is; call sites attach context with
// errors.Wrapf the same way encoding/fasta wraps a scanner error.
package vgerr

import "github.com/pkg/errors"

// Sentinel error kinds. Wrap these with errors.Wrapf (or Wrap) at the call
// site that detects the condition; never retried by the core.
var (
	// ErrBadMagic is returned when a GDEF file's first line is not "@gdef".
	ErrBadMagic = errors.New("vgraph: bad gdef magic")
	// ErrInvalidSource is returned by the variant reader, and by graphbuild
	// and gdef when a reference or variant source cannot be opened or read,
	// for a malformed region, missing file, or similar setup failure.
	ErrInvalidSource = errors.New("vgraph: invalid source")
	// ErrDuplicateLabel is returned when a GDEF file defines the same
	// subgraph label twice.
	ErrDuplicateLabel = errors.New("vgraph: duplicate subgraph label")
	// ErrUnknownSubgraph is returned when a label has no stored filter.
	ErrUnknownSubgraph = errors.New("vgraph: unknown subgraph label")
	// ErrPopulationMismatch is returned when a bitstring's length does not
	// equal 2*num_samples.
	ErrPopulationMismatch = errors.New("vgraph: population width mismatch")
	// ErrReservedName is returned when a definition explicitly names a
	// "~"-prefixed (negation) label.
	ErrReservedName = errors.New("vgraph: reserved negation name")
	// ErrInsufficientPopulation is returned when a definition asks for
	// more samples than its parent has set.
	ErrInsufficientPopulation = errors.New("vgraph: insufficient population")
	// ErrCycleDetected is returned by Graph.Finalize's DFS pass.
	ErrCycleDetected = errors.New("vgraph: cycle detected")
	// ErrNotFinalized is returned by Graph.Begin when the topological
	// order has not been built.
	ErrNotFinalized = errors.New("vgraph: graph not finalized")
	// ErrInvalidDerivation is returned when a derived graph's root is not
	// among the nodes the derivation included.
	ErrInvalidDerivation = errors.New("vgraph: invalid derivation, root excluded")
	// ErrScoreOverflow is surfaced by the aligner collaborator when
	// match*read_len exceeds the scoring accumulator's width.
	ErrScoreOverflow = errors.New("vgraph: alignment score overflow")
	// ErrProfileConflict is returned by a simulator profile that requests
	// variant bases with zero variant nodes.
	ErrProfileConflict = errors.New("vgraph: conflicting simulation profile")
)
