// Package codepoint validates Unicode scalar values and the integer values
// callers pass as code units.
package codepoint
