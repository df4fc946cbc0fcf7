package explorer

import "github.com/matzehuels/cfgexplorer/pkg/graph"

// Panel receives the details of the current block after every repaint.
//
// The TUI host draws it as a side pane. Hosts that poll with
// [Explorer.BlockInfoJSON] instead can pass [NopPanel].
type Panel interface {
	Update(info BlockInfo, locals []graph.LocalDoc)
}

// NopPanel discards updates.
type NopPanel struct{}

func (NopPanel) Update(BlockInfo, []graph.LocalDoc) {}

// PanelFunc adapts a function to a Panel.
type PanelFunc func(info BlockInfo, locals []graph.LocalDoc)

func (f PanelFunc) Update(info BlockInfo, locals []graph.LocalDoc) { f(info, locals) }
