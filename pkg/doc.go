// Package pkg provides the core libraries for Cardflow canvas layout.
//
// # Overview
//
// Cardflow arranges cards on an infinite canvas. Clients describe cards by
// id, size, and creation time; Cardflow answers with deterministic positions.
// The pkg directory is organized into four main areas:
//
//  1. [layout] - Pure layout algorithms (packing, overlap resolution, flow)
//  2. [board] - Domain model (boards, cards, lineage)
//  3. [engine] - Orchestration (cached layout runs)
//  4. [store] / [cache] - Persistence and layout caching backends
//
// # Architecture
//
// The typical data flow through Cardflow:
//
//	Board (cards with sizes)
//	         ↓
//	    [layout] package (masonry packing + overlap shifts)
//	         ↓
//	    [engine] package (cache lookup, hooks, logging)
//	         ↓
//	    [board] package (positions applied to cards)
//	         ↓
//	    JSON/SVG/DOT output
//
// # Quick Start
//
// Arrange a board and render it:
//
//	import (
//	    "github.com/lmarchetti/cardflow/pkg/board"
//	    "github.com/lmarchetti/cardflow/pkg/render"
//	)
//
//	// 1. Build a board
//	b := board.NewBoard("sprint")
//	b.AddCard(board.NewCard("First card"))
//	b.AddCard(board.NewCard("Second card"))
//
//	// 2. Repack it
//	b.Arrange()
//
//	// 3. Render to SVG
//	svg := render.BoardSVG(b, render.WithTitles())
//
// # Main Packages
//
// ## Core Domain Logic
//
// [layout] - Stateless layout algorithms: masonry column packing with
// shortest-column selection, neighbor overlap resolution for oversized cards,
// resize rearrangement, and free-flow placement with collision dodging.
//
// [board] - Boards and cards. Card operations (add, place, resize, duplicate,
// branch, share) delegate geometry to [layout] and keep titles, payloads, and
// lineage links here.
//
// ## Orchestration
//
// [engine] - The layout runner used by CLI and server. Wraps [layout] calls
// with content-addressed caching, observability hooks, and structured logging.
//
// ## Infrastructure
//
// [store] - Board persistence backends: MemoryStore for tests and ephemeral
// servers, FileStore for local use, MongoStore for deployments.
//
// [cache] - Layout cache backends: FileCache (CLI), RedisCache (server),
// NullCache (caching disabled). Keys are derived from a hash of the cards'
// ids, sizes, and creation times.
//
// [observability] - Hook interfaces for layout, cache, and store events,
// with no-op defaults.
//
// ## Visualization
//
// [render] - SVG rendering of boards and Graphviz lineage diagrams of
// duplicate/branch ancestry.
//
// ## Support
//
// [errors] - Structured errors with codes shared across packages.
//
// [buildinfo] - Build-time version information injected via ldflags.
package pkg
