package devicetree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSource writes the tree rooted at root as device tree source.
func WriteSource(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "/dts-v1/;\n\n")
	writeNode(bw, root, 0, true)

	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, depth int, root bool) {
	indent := strings.Repeat("\t", depth)

	name := n.Name
	if root {
		name = "/"
	}

	fmt.Fprintf(w, "%s%s {\n", indent, name)

	for _, p := range n.Properties {
		fmt.Fprintf(w, "%s\t%s;\n", indent, formatProp(p))
	}

	for i, c := range n.Children {
		if i > 0 || len(n.Properties) > 0 {
			w.WriteString("\n")
		}

		writeNode(w, c, depth+1, false)
	}

	fmt.Fprintf(w, "%s};\n", indent)
}

func formatProp(p Property) string {
	if len(p.Value) == 0 {
		return p.Name
	}

	if strs := p.Strings(); strs != nil {
		quoted := make([]string, len(strs))
		for i, s := range strs {
			quoted[i] = fmt.Sprintf("%q", s)
		}

		return p.Name + " = " + strings.Join(quoted, ", ")
	}

	if cells := p.Cells(); cells != nil {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("0x%x", c)
		}

		return p.Name + " = <" + strings.Join(parts, " ") + ">"
	}

	parts := make([]string, len(p.Value))
	for i, b := range p.Value {
		parts[i] = fmt.Sprintf("%02x", b)
	}

	return p.Name + " = [" + strings.Join(parts, " ") + "]"
}
