package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Document Types
// =============================================================================

// CrateDocument is the top-level document: a crate name and its functions.
// It is loaded wholesale and replaced wholesale on reload.
type CrateDocument struct {
	Name      string        `json:"name"`
	Functions []FunctionDoc `json:"functions"`
}

// FunctionDoc describes one function's control-flow graph.
// Blocks are indexed by block id: Blocks[i].ID == i.
type FunctionDoc struct {
	Name       string     `json:"name"`
	ShortName  string     `json:"short_name"`
	Blocks     []BlockDoc `json:"blocks"`
	Locals     []LocalDoc `json:"locals"`
	EntryBlock int        `json:"entry_block"`
}

// BlockDoc is one basic block: straight-line statements ending in a terminator.
type BlockDoc struct {
	ID           int            `json:"id"`
	Statements   []StatementDoc `json:"statements"`
	Terminator   TerminatorDoc  `json:"terminator"`
	Predecessors []int          `json:"predecessors"`
	Role         BlockRole      `json:"role"`
	Summary      string         `json:"summary"`
}

// StatementDoc is one MIR statement and its human-readable annotation.
type StatementDoc struct {
	Source     string `json:"mir"`
	Annotation string `json:"annotation"`
}

// TerminatorDoc is a block's final control transfer and its outgoing edges.
type TerminatorDoc struct {
	Kind       string    `json:"kind"`
	Source     string    `json:"mir"`
	Annotation string    `json:"annotation"`
	Edges      []EdgeDoc `json:"edges"`
}

// EdgeDoc is one outgoing control-flow edge.
type EdgeDoc struct {
	Target     int      `json:"target"`
	Label      string   `json:"label"`
	Kind       EdgeKind `json:"kind"`
	Annotation string   `json:"annotation"`
}

// LocalDoc is a MIR local and every value assigned to it.
type LocalDoc struct {
	Name        string       `json:"name"`
	Type        string       `json:"ty"`
	SourceName  *string      `json:"source_name,omitempty"`
	Assignments []Assignment `json:"assignments"`
}

// Assignment records a value written to a local in a given block.
type Assignment struct {
	BlockID int    `json:"block_id"`
	Value   string `json:"value"`
}

// =============================================================================
// Block Role
// =============================================================================

// BlockRole classifies a block's position in the control flow.
type BlockRole int

// Block roles.
const (
	RoleLinear BlockRole = iota
	RoleEntry
	RoleExit
	RoleBranchPoint
	RoleMergePoint
	RoleCleanup
)

var roleNames = map[BlockRole]string{
	RoleEntry:       "entry",
	RoleExit:        "exit",
	RoleBranchPoint: "branchpoint",
	RoleMergePoint:  "mergepoint",
	RoleLinear:      "linear",
	RoleCleanup:     "cleanup",
}

// String returns the wire name of the role.
func (r BlockRole) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("BlockRole(%d)", int(r))
}

// ParseBlockRole converts a wire name into a BlockRole.
func ParseBlockRole(s string) (BlockRole, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return RoleLinear, fmt.Errorf("unknown block role %q", s)
}

// MarshalJSON implements json.Marshaler.
func (r BlockRole) MarshalJSON() ([]byte, error) {
	s, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown block role %d", int(r))
	}
	return json.Marshal(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *BlockRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseBlockRole(s)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// =============================================================================
// Edge Kind
// =============================================================================

// EdgeKind classifies an outgoing edge.
type EdgeKind int

// Edge kinds.
const (
	EdgeNormal EdgeKind = iota
	EdgeCleanup
	EdgeOtherwise
	EdgeBranch
)

var edgeKindNames = map[EdgeKind]string{
	EdgeNormal:    "normal",
	EdgeCleanup:   "cleanup",
	EdgeOtherwise: "otherwise",
	EdgeBranch:    "branch",
}

// String returns the wire name of the edge kind.
func (k EdgeKind) String() string {
	if s, ok := edgeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EdgeKind(%d)", int(k))
}

// ParseEdgeKind converts a wire name into an EdgeKind.
func ParseEdgeKind(s string) (EdgeKind, error) {
	for k, name := range edgeKindNames {
		if name == s {
			return k, nil
		}
	}
	return EdgeNormal, fmt.Errorf("unknown edge kind %q", s)
}

// MarshalJSON implements json.Marshaler.
func (k EdgeKind) MarshalJSON() ([]byte, error) {
	s, ok := edgeKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown edge kind %d", int(k))
	}
	return json.Marshal(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *EdgeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseEdgeKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// =============================================================================
// Required Fields
// =============================================================================

// UnmarshalJSON implements json.Unmarshaler. A block must carry its id,
// role and terminator; their zero values are valid and would otherwise
// hide an incomplete document.
func (b *BlockDoc) UnmarshalJSON(data []byte) error {
	type plain BlockDoc
	var aux struct {
		*plain
		ID         *int           `json:"id"`
		Role       *BlockRole     `json:"role"`
		Terminator *TerminatorDoc `json:"terminator"`
	}
	aux.plain = (*plain)(b)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.ID == nil:
		return fmt.Errorf("block is missing %q", "id")
	case aux.Role == nil:
		return fmt.Errorf("bb%d is missing %q", *aux.ID, "role")
	case aux.Terminator == nil:
		return fmt.Errorf("bb%d is missing %q", *aux.ID, "terminator")
	}
	b.ID, b.Role, b.Terminator = *aux.ID, *aux.Role, *aux.Terminator
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. An edge must carry its target
// and kind.
func (e *EdgeDoc) UnmarshalJSON(data []byte) error {
	type plain EdgeDoc
	var aux struct {
		*plain
		Target *int      `json:"target"`
		Kind   *EdgeKind `json:"kind"`
	}
	aux.plain = (*plain)(e)
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Target == nil:
		return fmt.Errorf("edge is missing %q", "target")
	case aux.Kind == nil:
		return fmt.Errorf("edge to bb%d is missing %q", *aux.Target, "kind")
	}
	e.Target, e.Kind = *aux.Target, *aux.Kind
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// Block returns the block with the given id.
func (f *FunctionDoc) Block(id int) (*BlockDoc, bool) {
	if f == nil || id < 0 || id >= len(f.Blocks) {
		return nil, false
	}
	return &f.Blocks[id], true
}

// EdgeCount returns the number of outgoing edges of block id, or 0 if the
// block does not exist.
func (f *FunctionDoc) EdgeCount(id int) int {
	b, ok := f.Block(id)
	if !ok {
		return 0
	}
	return len(b.Terminator.Edges)
}

// Edge returns the i-th outgoing edge of block id.
func (f *FunctionDoc) Edge(id, i int) (EdgeDoc, bool) {
	b, ok := f.Block(id)
	if !ok || i < 0 || i >= len(b.Terminator.Edges) {
		return EdgeDoc{}, false
	}
	return b.Terminator.Edges[i], true
}

// DisplayName returns the short name when present, else the full name.
func (f *FunctionDoc) DisplayName() string {
	if f.ShortName != "" {
		return f.ShortName
	}
	return f.Name
}

// Successors returns the target ids of block id's outgoing edges in order.
func (f *FunctionDoc) Successors(id int) []int {
	b, ok := f.Block(id)
	if !ok {
		return nil
	}
	out := make([]int, len(b.Terminator.Edges))
	for i, e := range b.Terminator.Edges {
		out[i] = e.Target
	}
	return out
}

// BlockLabel returns the conventional display name of a block: "bb<id>".
func BlockLabel(id int) string {
	return "bb" + strconv.Itoa(id)
}
