// Package graph provides the control-flow graph document model for cfgexplorer.
//
// This package defines the canonical wire format produced by the MIR
// extraction tool: a crate-level document holding one entry per function,
// each carrying its basic blocks, terminators, outgoing edges and locals.
// Everything downstream (layout, navigation, rendering) reads these types
// and never mutates them.
//
// # Core Types
//
//   - [CrateDocument]: a crate name plus an ordered list of functions
//   - [FunctionDoc]: blocks (index = block id), locals and the entry block
//   - [BlockDoc], [TerminatorDoc], [EdgeDoc]: one basic block and its exits
//   - [BlockRole], [EdgeKind]: closed enumerations serialized in lowercase
//
// # Document Format
//
//	{
//	  "name": "demo",
//	  "functions": [{
//	    "name": "demo::pick",
//	    "short_name": "pick",
//	    "entry_block": 0,
//	    "blocks": [{
//	      "id": 0,
//	      "role": "branchpoint",
//	      "terminator": {
//	        "kind": "SwitchInt",
//	        "edges": [{"target": 1, "label": "true", "kind": "branch"}]
//	      }
//	    }]
//	  }]
//	}
//
// # Loading
//
// [Parse], [Read] and [ReadFile] decode and validate in one step. A document
// that fails to decode or references a block that does not exist is rejected
// with an ErrCodeDocumentParse error; a document with no functions is
// rejected with ErrCodeEmptyDocument. Once a document has been accepted,
// every block id it contains is known to be in range, so consumers do not
// re-check bounds.
//
// # Analysis
//
// [FunctionDoc.LoopBlocks] reports blocks that sit on a cycle and
// [FunctionDoc.ASCII] renders a compact textual view of the graph:
//
//	bb0 (entry) ──▶ bb1, bb2
//	bb1 (exit)
//	bb2 (exit)
//
// # Concurrency
//
// Documents are immutable after loading and safe for concurrent reads.
package graph
