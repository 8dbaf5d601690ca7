// Package design holds the document model of a DNA nanostructure: strands
// made of helix intervals and insertions, the junction labels between
// consecutive domains, helices, grids and the crossover registry.
//
// A Design is an immutable snapshot. Mutations return a new Design that
// shares every untouched strand with the previous one, so readers can keep
// a stable snapshot while an edit is computed:
//
//	next := d.WithStrand(id, s)
//
// Junction labels are derived data. Reidentify recomputes them, together
// with the crossover registry, from the nucleotide structure of each strand.
package design
