// Package check evaluates content checks against an executed request's
// result: literal substring matching, JSON path extraction, and JSON Schema
// validation.
package check
