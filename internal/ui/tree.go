package ui

import (
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ocp-tools/ocpview/internal/libraries"
	"github.com/ocp-tools/ocpview/internal/status"
)

// LibraryTree is the tree view of a libraries.Tracker.
type LibraryTree interface {
	Roots() []libraries.Node
	Children(libraries.Node) []libraries.Node
}

// StatusTree is the tree view of a status.Tracker.
type StatusTree interface {
	Roots() []status.Node
	Children(status.Node) []status.Node
}

// RenderLibraries renders every configured library with its details.
func RenderLibraries(t LibraryTree, st Styles) string {
	root := newTree(st).Root(st.Label.Render("Libraries"))
	for _, n := range t.Roots() {
		desc := st.Desc
		if n.Description == libraries.NotAvailable {
			desc = st.Dim
		}
		item := line(st.Label, n.Label, desc, n.Description)
		children := t.Children(n)
		if len(children) == 0 {
			root.Child(item)
			continue
		}
		sub := newTree(st).Root(item)
		for _, c := range children {
			sub.Child(line(st.Dim, c.Label, st.Desc, c.Description))
		}
		root.Child(sub)
	}
	return root.String()
}

// RenderStatus renders the viewer status and the tracked libraries.
func RenderStatus(t StatusTree, st Styles) string {
	roots := t.Roots()
	if len(roots) == 0 {
		return ""
	}

	viewer := roots[0]
	out := newTree(st).Root(line(st.Label, viewer.Label, statusStyle(viewer.Description, st), viewer.Description))
	for _, c := range t.Children(viewer) {
		out.Child(line(st.Dim, c.Label, st.Desc, c.Description))
	}
	for _, n := range roots[1:] {
		item := line(st.Label, n.Label, st.Desc, n.Description)
		children := t.Children(n)
		if len(children) == 0 {
			out.Child(item)
			continue
		}
		sub := newTree(st).Root(item)
		for _, c := range children {
			sub.Child(line(st.Dim, c.Label, statusStyle(c.Description, st), c.Description))
		}
		out.Child(sub)
	}
	return out.String()
}

func newTree(st Styles) *tree.Tree {
	return tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.Enumerator)
}

func statusStyle(desc string, st Styles) renderer {
	switch desc {
	case status.Running, status.Installed:
		return st.Good
	case status.Stopped:
		return st.Bad
	default:
		return st.Dim
	}
}

type renderer interface{ Render(...string) string }

func line(labelStyle renderer, label string, descStyle renderer, desc string) string {
	if desc == "" {
		return labelStyle.Render(label)
	}
	return labelStyle.Render(label) + " " + descStyle.Render(desc)
}
