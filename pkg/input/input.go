// Package input translates host key names into explorer actions.
//
// Key names follow the browser KeyboardEvent.key convention ("ArrowLeft",
// "Enter", "Escape", "j"). Hosts with other naming schemes translate before
// calling [ParseKey].
package input

import "fmt"

// Kind identifies an action.
type Kind int

// Action kinds.
const (
	None Kind = iota
	GoBack
	MoveDown
	MoveUp
	MoveRight
	SelectEdge
	Reset
	FocusSearch
)

var kindNames = [...]string{
	None:        "none",
	GoBack:      "go_back",
	MoveDown:    "move_down",
	MoveUp:      "move_up",
	MoveRight:   "move_right",
	SelectEdge:  "select_edge",
	Reset:       "reset",
	FocusSearch: "focus_search",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is the result of mapping one key. Edge is only meaningful for
// SelectEdge and is zero-indexed.
type Action struct {
	Kind Kind
	Edge int
}

func (a Action) String() string {
	if a.Kind == SelectEdge {
		return fmt.Sprintf("select_edge(%d)", a.Edge)
	}
	return a.Kind.String()
}

// ParseKey maps a key name to an action. Unknown keys map to None.
//
// Digits "1" through "9" select edges 0 through 8.
func ParseKey(key string) Action {
	switch key {
	case "h", "ArrowLeft", "Backspace":
		return Action{Kind: GoBack}
	case "j", "ArrowDown":
		return Action{Kind: MoveDown}
	case "k", "ArrowUp":
		return Action{Kind: MoveUp}
	case "l", "ArrowRight", "Enter":
		return Action{Kind: MoveRight}
	case "Escape":
		return Action{Kind: Reset}
	case "/":
		return Action{Kind: FocusSearch}
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return Action{Kind: SelectEdge, Edge: int(key[0] - '1')}
	}
	return Action{Kind: None}
}
