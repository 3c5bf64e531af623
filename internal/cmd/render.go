package cmd

import (
	"fmt"
	"io"

	"github.com/taigrr/colorhash"

	"github.com/dendrascience/archive-preview/tree"
)

// renderTree writes t as an indented listing. With color set, every
// directory name gets a stable 256-color code derived from its name, so the
// same directory keeps its color across runs.
func renderTree(w io.Writer, t *tree.Tree, rootName string, color bool) {
	root, ok := t.Root()
	if !ok {
		fmt.Fprintf(w, "%s/ (empty)\n", rootName)
		return
	}
	fmt.Fprintf(w, "%s/\n", paint(rootName, color))
	renderChildren(w, t, root, "", color)
}

func renderChildren(w io.Writer, t *tree.Tree, id tree.NodeID, indent string, color bool) {
	children := t.Node(id).Children
	for i, c := range children {
		n := t.Node(c)
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		if n.IsDirectory {
			fmt.Fprintf(w, "%s%s%s/\n", indent, branch, paint(n.OriginName, color))
			renderChildren(w, t, c, indent+next, color)
			continue
		}
		fmt.Fprintf(w, "%s%s%s  [%s]\n", indent, branch, n.OriginName, n.Key)
	}
}

func paint(s string, color bool) string {
	if !color {
		return s
	}
	code := 17 + colorhash.HashString(s)%214
	if code < 17 {
		code += 214
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}
