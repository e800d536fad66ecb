package status

// NodeKind identifies what a status tree node shows.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindVersion
	KindPort
	KindLibrary
	KindExtension
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindVersion:
		return "version"
	case KindPort:
		return "port"
	case KindLibrary:
		return "library"
	case KindExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Node is one entry of the status tree.
type Node struct {
	Kind        NodeKind
	Label       string
	Description string
	// Library is the package name behind a library node.
	Library     string
	Collapsible bool
}

// Viewer status descriptions.
const (
	Running      = "RUNNING"
	Stopped      = "STOPPED"
	NotInstalled = "not installed"
	Installed    = "installed"
)

// Roots returns the viewer node followed by one node per tracked library.
func (t *Tracker) Roots() []Node {
	root := Node{
		Kind:        KindRoot,
		Label:       t.displayName,
		Library:     t.viewerLibrary,
		Description: NotInstalled,
	}
	if t.state.Installed {
		root.Collapsible = true
		root.Description = Stopped
		if t.state.Running {
			root.Description = Running
		}
	}

	nodes := []Node{root}
	for _, display := range t.state.Libraries {
		lib := t.sources[display]
		nodes = append(nodes, Node{
			Kind:        KindLibrary,
			Label:       display,
			Description: t.version(lib),
			Library:     lib,
			Collapsible: display == JupyterLibrary,
		})
	}
	return nodes
}

// Children returns the child nodes of n.
func (t *Tracker) Children(n Node) []Node {
	switch {
	case n.Kind == KindRoot && t.state.Installed:
		children := []Node{{
			Kind:        KindVersion,
			Label:       "version",
			Description: t.version(t.viewerLibrary),
			Library:     t.viewerLibrary,
		}}
		if t.state.Running {
			children = append(children, Node{
				Kind:        KindPort,
				Label:       "port",
				Description: t.state.Port,
				Library:     t.viewerLibrary,
			})
		}
		return children

	case n.Kind == KindLibrary && n.Label == JupyterLibrary:
		desc := NotInstalled
		if t.state.ExtensionInstalled {
			desc = Installed
		}
		return []Node{{
			Kind:        KindExtension,
			Label:       "extension",
			Description: desc,
			Library:     n.Library,
		}}
	}
	return nil
}
