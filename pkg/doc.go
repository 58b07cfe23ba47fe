// Package pkg provides the core libraries for laneweave.
//
// # Overview
//
// Laneweave works with a small swimlane diagram DSL: plain text describing
// lanes, nodes, and edges. The pkg directory is organized into:
//
//  1. [diagram] - The core: parser, graph model, structural diff, text patcher
//  2. [remote] - Clients for the external validation and render/share services
//  3. [cache] - Response cache backends (file, redis, null) and key derivation
//  4. [store] - Saved-diagram persistence (memory, mongodb)
//  5. [httputil] - Retry with exponential backoff
//  6. [errors] - Structured error codes shared by the CLI and HTTP server
//
// # Architecture
//
// The typical data flow:
//
//	Diagram source text
//	         ↓
//	    [diagram] package (parse into lanes/nodes/edges)
//	         ↓
//	    [diagram/diff] package (structural delta between versions)
//	    [diagram/patch] package (ordered edits applied back to the text)
//	         ↓
//	    Graph JSON / patched text output
//
// The parser is best-effort by design: unrecognized lines are dropped, never
// reported as errors. The patcher edits the original text line by line and
// preserves everything an operation does not touch.
package pkg
