// Package pkg provides the core libraries for uccalint, a structural
// validator for UCCA passage graphs.
//
// # Overview
//
// A UCCA passage is a DAG over two layers: terminals (layer 0) holding the
// tokens of a sentence, and foundational units (layer 1) connected by
// edges labelled with category tags. uccalint checks a passage against the
// grammar of the foundational layer and reports every violation as a
// diagnostic rather than stopping at the first one.
//
// # Architecture
//
//	passage JSON
//	     ↓
//	[io] (decode and rebuild the graph)
//	     ↓
//	[passage] (nodes, edges, tags)
//	     ↓
//	[validation] (lazy diagnostic stream)
//	     ↓
//	[pipeline] (caching, persistence, rendering, batches)
//	     ↓
//	CLI / HTTP API
//
// # Quick Start
//
//	p, _ := io.ImportJSON("passage.json")
//	for d := range validation.Validate(p, validation.DefaultOptions()) {
//	    fmt.Println(d)
//	}
//
// # Main Packages
//
// [passage] - The passage graph: terminals, units, primary, remote and
// linkage edges, tag sets.
//
// [validation] - The rule set. [validation.Validate] returns an iterator so
// callers can stop after the first diagnostic.
//
// [io] - JSON import and export.
//
// [render/nodelink] - Graphviz diagrams with diagnostic highlighting.
//
// [pipeline] - Validation and rendering with caching and report storage,
// shared by the CLI and the HTTP server.
//
// [cache] - File and Redis caches keyed by passage content and options.
//
// [store] - Report history in memory or MongoDB.
//
// [config] - TOML configuration.
//
// [errors] - Error codes shared by every package.
//
// [observability] - Hooks for validation, rendering, cache and HTTP events.
//
// [passage]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/passage
// [validation]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/validation
// [validation.Validate]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/validation#Validate
// [io]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/uccalint/pkg/observability
package pkg
