// Package topology implements the strand-level edits of a design: cutting
// a strand, opening a cyclic strand, merging two strands, closing a cycle,
// cross-cutting and the generalized crossover that combines them.
//
// Every function is pure. It receives a design.Design snapshot and returns
// a new one; on error the returned design is the input, unchanged. None of
// these functions allocates or consumes nucleotides, they only move domains
// between strands and relabel junctions.
//
// Junction labels produced here may be design.UnidentifiedXover. Callers
// that need crossover ids run design.Reidentify on the result.
package topology
