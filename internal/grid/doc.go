// Package grid places helices on square and honeycomb lattices.
//
// A Manager indexes the occupied cells of a design. It answers which helix
// sits on a cell, snaps moved helices back onto their lattice and fits new
// grids to a set of free helices. Edges express the lattice offset between
// two helices so that copied strands can be replayed elsewhere.
package grid
