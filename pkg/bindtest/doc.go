// Package bindtest provides helpers for testing code built on the binding
// engine: a fake clock for transitions, a scripted control, recorders for
// delegate callbacks and reported errors, and small model types.
package bindtest
