package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual representation of an item tree to w, in
// the style of a compiler's `-ast-dump` flag.
func Dump(w io.Writer, items []Item) {
	for _, it := range items {
		dumpItem(w, it, 0)
	}
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func dumpItem(w io.Writer, it Item, depth int) {
	indent(w, depth)
	switch it := it.(type) {
	case *FnItem:
		fmt.Fprintf(w, "fn %s(%d params)\n", it.Name, len(it.Params))
	case *ExternBlock:
		fmt.Fprintf(w, "extern block (%d fns)\n", len(it.Fns))
	case *ModItem:
		fmt.Fprintf(w, "mod %s (inline=%t, %d items)\n", it.Name, it.Inline, len(it.Items))
		for _, sub := range it.Items {
			dumpItem(w, sub, depth+1)
		}
	case *StructItem:
		fmt.Fprintf(w, "struct %s (%d fields)\n", it.Name, len(it.Fields))
	case *ImplItem:
		fmt.Fprintf(w, "impl %s (%d methods)\n", it.TypeName, len(it.Methods))
	case *UseItem:
		fmt.Fprintf(w, "use\n")
	default:
		fmt.Fprintf(w, "%T\n", it)
	}
}
