// Package explorer is the controller an embedding host talks to.
//
// An [Explorer] owns the loaded document, the selected function, that
// function's cached layout, the navigation state and the viewport. It holds
// a drawing surface and a context panel acquired once at construction.
//
// # Event Model
//
// Hosts deliver one event at a time (a key, a wheel tick, a drag) and each
// handler runs to completion: mutate state, then repaint the surface and
// refresh the panel. Queries such as [Explorer.FunctionCount] and
// [Explorer.BlockInfoJSON] never repaint.
//
// An Explorer is not safe for concurrent use. Hosts that receive events
// concurrently, such as the HTTP server, serialize them per instance.
//
// # Errors
//
// Construction fails with an INITIALIZATION error when the surface or panel
// is missing. [Explorer.Load] fails with DOCUMENT_PARSE or EMPTY_DOCUMENT and
// leaves any previously loaded document in place. Navigation with stale or
// out-of-range indices is a silent no-op.
//
// # Usage
//
//	ex, err := explorer.New(surface, explorer.NopPanel{})
//	if err != nil {
//	    return err
//	}
//	if err := ex.Load(data); err != nil {
//	    return err
//	}
//	ex.HandleKey("j")     // select the next outgoing edge
//	ex.HandleKey("Enter") // follow it
//	info, _ := ex.BlockInfoJSON()
package explorer
