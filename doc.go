// Copyright (c) 2025 the scram-go authors
//
// MIT License

/*
Package zbdd computes the minimal cut sets of a preprocessed fault tree with
Zero-Suppressed Binary Decision Diagrams (ZBDD). A cut set is a set of basic
event indices whose joint occurrence makes the top event of the tree true;
the engine minimizes the collection under subset inclusion and bounds the
cardinality of every reported set by a caller-supplied limit.

Basics

The input is an indexed Boolean graph: a DAG of AND/OR gates over positive
variable indices, with complements pushed down to the variable leaves
(negative indices on variable references) and independent subgraphs flagged
as modules. Three construction paths produce a ZBDD from such an input: a
direct recursive conversion of the graph (FromGraph), a conversion of a
Reduced Ordered BDD with attributed edges (FromBDD), and the assembly of
per-module cut-set containers produced by a MOCUS-style expansion
(FromCutSets, driven by Mocus). Analyze minimizes the diagram and walks it
destructively to emit the explicit cut sets.

Internally every diagram is a family of sets over signed literals. A
non-terminal node holds a literal index, an ordering key, and two branches:
sets that contain the literal (high) and sets that do not (low). Nodes live
in an arena and are hash-consed through a unicity table keyed by the
(index, high, low) triplet, so structurally equal subgraphs share one slot.
The two terminals occupy slots 0 (the empty family) and 1 (the family
holding only the empty set). Unreachable slots are reclaimed by a mark and
sweep pass at operation boundaries, which also drops their unicity entries.

The data structures and the overall shape of the kernel (node arena,
free-list threading, direct-mapped operation caches, prime-sized tables)
follow the conventions of BDD packages in the BuDDy tradition; the node
rules are the zero-suppressed ones, where a node whose high branch is the
empty family collapses to its low branch.

The engine is single-threaded: no method of a ZBDD or CutSetContainer may
be called concurrently with another method on the same instance.
*/
package zbdd
