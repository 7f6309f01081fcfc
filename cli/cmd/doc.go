// Package cmd provides the flowc subcommands: parse (AST and workflow
// dump), fmt (alternate AST renderings), init (configuration scaffolding),
// and repl (interactive session).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
