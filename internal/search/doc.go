// Package search provides the backends the suggest input queries, plus
// decorators that cache results and bound concurrent backend calls.
//
// Every backend satisfies Searcher. Failures are reported as *Error so the
// caller can tell transport problems from backend refusals without parsing
// strings.
package search
