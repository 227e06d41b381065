// Package cssveil renames every class and ID selector in an HTML/CSS/JS
// tree to a deterministic opaque name, consistently across all files.
//
// The engine works in three strict phases: discover every identifier in use
// across the whole tree, assign each a stable hashed replacement, then
// rewrite each file with a format-aware strategy that only touches safe
// syntactic positions (attribute values, selectors, string literals).
//
// # Usage
//
//	cfg := cssveil.Config{ScanCSS: true, ScanJS: true}
//	engine, err := cssveil.New(cfg, logger)
//	if err != nil {
//		return err
//	}
//	provider, err := cssveil.NewDirProvider(cssveil.DirProviderOptions{
//		Root:   "site",
//		Output: "encrypted",
//	})
//	if err != nil {
//		return err
//	}
//	result, err := engine.Run(ctx, provider)
//
// Because replacement names are pure functions of the original names, the
// mapping never needs to be persisted: re-running over an unchanged tree
// produces byte-identical output.
//
// # Precision boundary
//
// Matching is lexical, not AST-based. Dynamically constructed identifiers
// (string concatenation in JS, interpolation in templates) are never
// rewritten; see the JS strategy in Rewriter for the exact contract.
//
// # CLI Tool
//
// cssveil also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssveil/cmd/cssveil@latest
package cssveil
