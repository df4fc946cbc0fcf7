//go:build js && wasm

package main

import (
	"fmt"
	"html"
	"strings"
	"syscall/js"

	"github.com/matzehuels/cfgexplorer/pkg/errors"
	"github.com/matzehuels/cfgexplorer/pkg/explorer"
	"github.com/matzehuels/cfgexplorer/pkg/graph"
)

// domPanel writes the current block's details into a container element.
type domPanel struct {
	el js.Value
}

func newDOMPanel(doc js.Value, id string) (*domPanel, error) {
	el := doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, errors.New(errors.ErrCodeInitialization, "context element %q not found", id)
	}
	return &domPanel{el: el}, nil
}

func (p *domPanel) Update(info explorer.BlockInfo, locals []graph.LocalDoc) {
	p.el.Set("innerHTML", panelHTML(info, locals))
}

func panelHTML(info explorer.BlockInfo, locals []graph.LocalDoc) string {
	var b strings.Builder
	esc := html.EscapeString

	fmt.Fprintf(&b, `<h3>bb%d <span class="role role-%s">%s</span></h3>`, info.ID, info.Role, info.Role)
	if info.Summary != "" {
		fmt.Fprintf(&b, `<p class="summary">%s</p>`, esc(info.Summary))
	}

	if len(info.Statements) > 0 {
		b.WriteString(`<ol class="statements">`)
		for _, s := range info.Statements {
			fmt.Fprintf(&b, `<li><code>%s</code>`, esc(s.Source))
			if s.Annotation != "" {
				fmt.Fprintf(&b, ` <em>%s</em>`, esc(s.Annotation))
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ol>`)
	}

	t := info.Terminator
	fmt.Fprintf(&b, `<p class="terminator"><strong>%s</strong> <code>%s</code>`, esc(t.Kind), esc(t.Source))
	if t.Annotation != "" {
		fmt.Fprintf(&b, ` <em>%s</em>`, esc(t.Annotation))
	}
	b.WriteString(`</p>`)

	if len(t.Edges) > 0 {
		b.WriteString(`<ul class="edges">`)
		for i, e := range t.Edges {
			class := "edge edge-" + e.Kind.String()
			if i == info.SelectedEdge {
				class += " selected"
			}
			fmt.Fprintf(&b, `<li class="%s">%d: %s &rarr; bb%d`, class, i+1, esc(e.Label), e.Target)
			if e.Annotation != "" {
				fmt.Fprintf(&b, ` <em>%s</em>`, esc(e.Annotation))
			}
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	}

	if len(info.Predecessors) > 0 {
		b.WriteString(`<p class="preds">from `)
		for i, id := range info.Predecessors {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "bb%d", id)
		}
		b.WriteString(`</p>`)
	}

	var assigned []string
	for _, l := range locals {
		for _, a := range l.Assignments {
			if a.BlockID == info.ID {
				name := l.Name
				if l.SourceName != nil {
					name = *l.SourceName
				}
				assigned = append(assigned, fmt.Sprintf(`<li><code>%s = %s</code></li>`, esc(name), esc(a.Value)))
			}
		}
	}
	if len(assigned) > 0 {
		b.WriteString(`<ul class="locals">` + strings.Join(assigned, "") + `</ul>`)
	}
	return b.String()
}
