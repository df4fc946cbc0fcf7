package explorer

import (
	"encoding/json"

	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// BlockInfo describes the current block and the navigation around it.
// Its JSON form is what [Explorer.BlockInfoJSON] returns.
type BlockInfo struct {
	ID           int                  `json:"id"`
	Role         graph.BlockRole      `json:"role"`
	Summary      string               `json:"summary"`
	Statements   []graph.StatementDoc `json:"statements"`
	Terminator   graph.TerminatorDoc  `json:"terminator"`
	Predecessors []int                `json:"predecessors"`
	Path         []int                `json:"path"`
	SelectedEdge int                  `json:"selected_edge"`
}

func newBlockInfo(b *graph.BlockDoc, path []int, selected int) BlockInfo {
	term := b.Terminator
	term.Edges = orEmpty(term.Edges)
	return BlockInfo{
		ID:           b.ID,
		Role:         b.Role,
		Summary:      b.Summary,
		Statements:   orEmpty(b.Statements),
		Terminator:   term,
		Predecessors: orEmpty(b.Predecessors),
		Path:         orEmpty(path),
		SelectedEdge: selected,
	}
}

// orEmpty keeps absent lists encoding as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func marshalString(v any) (string, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(data), true
}
