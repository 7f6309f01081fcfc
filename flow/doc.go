// Package flow implements the front-end of the FlowDSL pipeline language: a
// recursive-descent parser that turns source text into an abstract syntax
// tree of definitions and pipelines, and a workflow builder that derives a
// bipartite worker/pipe graph from the AST's pure (variable-free)
// definitions.
//
// # Grammar
//
// Informal EBNF, using '|:' , '>', '>>', '{}', '()', '[', ',' as the
// language's layered delimiters:
//
//	file        := definition*
//	definition  := '#' ... '\n'                     -- comment, ignored
//	             | pipelines '|:' name tuple? braces?
//	pipelines   := '{' pipeline (';' pipeline)* ';'? '}'
//	             | pipeline
//	pipeline    := args? '>' workers ('>>' outputs)?
//	args        := arg (',' arg)*
//	arg         := '(' pipeline ')'                 -- inline pipeline
//	             | key-token                         -- pipe name
//	workers     := ('>' worker)*
//	worker      := key-token (sub)*
//	sub         := key-token '=' '(' pipeline ')'    -- pipeline sub
//	             | key-token '=' key-token           -- symbol sub
//	outputs     := key-token (',' key-token)*
//	tuple       := '(' (name (',' name)*)? ')'       -- pipeline-vars
//	braces      := '{' (name (',' name)*)? '}'       -- free-vars
//
// A key-token is a maximal run of bytes in the set [A-Za-z0-9_\-?!\[\].].
//
// # Pipeline
//
// A Pipeline chains Workers, drawing its first worker's inputs from
// Arguments and its last worker's outputs additionally from Outputs.
// Adjacent workers are connected by an automatically synthesized implicit
// Pipe. Only Definitions with no free variables and no pipeline variables
// ("pure" definitions) are materialised into a Workflow; see
// [Definition.Pure] and [BuildWorkflow].
//
// # Error recovery
//
// The parser never aborts on malformed input. Every sub-parser logs a
// diagnostic to the shared [Log] and returns the furthest position it
// reached; callers resume from there, guaranteeing forward progress so a
// single source file can report every syntax error it contains in one pass.
package flow
