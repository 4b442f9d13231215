// Copyright (c) 2025 the scram-go authors
//
// MIT License

package zbdd

import (
	"bufio"
	"fmt"
	"io"
)

// Stats returns information about the arena and the tables of the
// instance.
func (b *ZBDD) Stats() string {
	res := fmt.Sprintf("Allocated:  %d\n", len(b.nodes))
	res += fmt.Sprintf("Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	res += fmt.Sprintf("Free:       %d  (%.3g %%)\n", b.freenum, r)
	res += fmt.Sprintf("Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, 100.0-r)
	res += fmt.Sprintf("Modules:    %d\n", len(b.modules))
	if b.unique != nil {
		res += fmt.Sprintf("Unique:     %d", len(b.unique))
	} else {
		res += "Unique:     released"
	}
	return res
}

// PrintDot outputs the diagram in Graphviz's DOT format: solid edges for
// high branches, dashed for low, boxes for module proxies with a dotted
// edge into the module subgraph.
func (b *ZBDD) PrintDot(w io.Writer) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "digraph zbdd {")
	fmt.Fprintln(out, "\tempty [shape=box, label=\"0\", style=filled, height=0.3, width=0.3];")
	fmt.Fprintln(out, "\tbase [shape=box, label=\"1\", style=filled, height=0.3, width=0.3];")
	visited := make(map[int]bool)
	b.printDot(out, b.root, visited)
	for _, m := range b.modules {
		b.printDot(out, m, visited)
	}
	fmt.Fprintln(out, "}")
	return out.Flush()
}

func (b *ZBDD) printDot(out io.Writer, v int, visited map[int]bool) {
	if v < 2 || visited[v] {
		return
	}
	visited[v] = true
	n := b.nodes[v]
	shape := "circle"
	if n.module {
		shape = "box"
	}
	fmt.Fprintf(out, "\tn%d [shape=%s, label=\"%d [%d]\"];\n", v, shape, n.index, n.order)
	fmt.Fprintf(out, "\tn%d -> %s;\n", v, dotname(n.high))
	fmt.Fprintf(out, "\tn%d -> %s [style=dashed];\n", v, dotname(n.low))
	if n.module {
		if sub, ok := b.modules[n.index]; ok {
			fmt.Fprintf(out, "\tn%d -> %s [style=dotted];\n", v, dotname(sub))
			b.printDot(out, sub, visited)
		}
	}
	b.printDot(out, n.high, visited)
	b.printDot(out, n.low, visited)
}

func dotname(v int) string {
	switch v {
	case emptyset:
		return "empty"
	case baseset:
		return "base"
	}
	return fmt.Sprintf("n%d", v)
}
