package libraries

import (
	"strconv"
	"strings"
)

// NodeKind identifies what a library tree node shows.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindInstaller
	KindEnvironment
	KindEditable
	KindExamples
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "library"
	case KindInstaller:
		return "installer"
	case KindEnvironment:
		return "environment"
	case KindEditable:
		return "editable"
	case KindExamples:
		return "examples"
	default:
		return "unknown"
	}
}

// Node is one entry of the library tree.
type Node struct {
	Kind        NodeKind
	Label       string
	Description string
	Library     string
	Collapsible bool
}

const (
	// NotAvailable describes a configured library that is not installed.
	NotAvailable = "not available"
	// InvalidEntry describes a configured entry with the wrong shape.
	InvalidEntry = "invalid configuration"
)

// Roots returns one node per configured library, sorted by name.
func (t *Tracker) Roots() []Node {
	libs := t.snap.Libraries()
	nodes := make([]Node, 0, len(libs))
	for _, lib := range libs {
		n := Node{Kind: KindRoot, Label: lib, Library: lib, Description: NotAvailable}
		if r, ok := t.installed[lib]; ok {
			n.Description = r.Version
			n.Collapsible = true
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Children returns the details of an installed library node.
func (t *Tracker) Children(n Node) []Node {
	if n.Kind != KindRoot {
		return nil
	}
	r, ok := t.installed[n.Library]
	if !ok {
		return nil
	}

	children := []Node{
		{Kind: KindInstaller, Label: "installer", Description: r.Installer, Library: r.Name},
		{Kind: KindEnvironment, Label: "environment", Description: Environment(r), Library: r.Name},
		{Kind: KindEditable, Label: "editable", Description: strconv.FormatBool(r.Editable()), Library: r.Name},
	}
	if dl, ok, valid := t.snap.Download(r.Name); ok {
		desc := dl.URL
		if !valid {
			desc = InvalidEntry
		}
		children = append(children, Node{Kind: KindExamples, Label: "examples", Description: desc, Library: r.Name})
	}
	return children
}

// Environment names where a library lives: the source checkout of an
// editable install, otherwise the environment directory, which in the usual
// <env>/lib/pythonX.Y/site-packages layout is the fourth segment from the end.
func Environment(r Record) string {
	if r.EditableLocation != "" {
		return r.EditableLocation
	}
	parts := strings.Split(strings.ReplaceAll(r.Location, "\\", "/"), "/")
	if len(parts) < 4 {
		return r.Location
	}
	return parts[len(parts)-4]
}
