// Package orchestrator resolves a form (built-in definition, definition file
// or OpenAPI component schema), applies transformers and hands it to a
// renderer from a registry. It is the single entry point used by the formkit
// command.
package orchestrator
