// Package pkg provides the core libraries for cfgexplorer, an interactive
// viewer for the control-flow graphs of a crate's functions.
//
// # Overview
//
// A crate document lists functions, each a set of basic blocks joined by
// typed edges. cfgexplorer lays one function out at a time and lets the
// user walk it block by block, keeping a breadcrumb path and a selected
// outgoing edge.
//
// # Architecture
//
// The data flow through cfgexplorer:
//
//	crate.json
//	     ↓
//	[graph] package (decode + validate)
//	     ↓
//	[layout] package (BFS layering, node and edge geometry)
//	     ↓
//	[navigation] + [viewport] (cursor, path, pan and zoom)
//	     ↓
//	[render] package (paint a frame onto a Surface)
//	     ↓
//	[render/sink] (SVG, PNG, terminal cells, recorder)
//
// [explorer] owns one instance of each and is what every host drives.
//
// # Quick Start
//
//	svg := sink.NewSVG(viewport.Size{Width: 1200, Height: 800})
//	ex, _ := explorer.New(svg, explorer.NopPanel{})
//	if err := ex.Load(data); err != nil {
//	    log.Fatal(err)
//	}
//	ex.HandleKey("j")     // select the next outgoing edge
//	ex.HandleKey("Enter") // follow it
//	os.WriteFile("frame.svg", svg.Bytes(), 0o644)
//
// # Main Packages
//
// [graph] - Document types, JSON decoding, load-time validation and an ASCII
// dump of a function.
//
// [layout] - Deterministic layered layout: entry at layer 0, unreachable
// blocks on one extra layer, back edges routed around the side.
//
// [navigation] - Current block, history path and edge selection.
//
// [viewport] - Pan, zoom around a point, fit to view and center on a node.
//
// [input] - Maps host key names onto explorer actions.
//
// [render] - Frame painting against the [render.Surface] interface, themes,
// and SVG to PNG/PDF conversion.
//
// [render/nodelink] - Graphviz export of a whole function.
//
// [explorer] - The controller tying the above together.
//
// ## Infrastructure
//
// [cache] - File and null caches for rendered artifacts.
//
// [config] - TOML configuration.
//
// [session] - In-memory session store for the HTTP host.
//
// [observability] - Hooks for load, render and request metrics.
//
// [errors] - Coded errors shared by every host.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example ./... # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/layout
// [navigation]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/navigation
// [viewport]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/viewport
// [input]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/input
// [render]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/render/nodelink
// [explorer]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/explorer
// [cache]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/config
// [session]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/session
// [observability]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cfgexplorer/pkg/errors
package pkg
