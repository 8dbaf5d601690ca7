// Package operation defines the closed set of edits accepted by the
// dispatcher: design operations, clipboard (copy) operations and pending
// gestures whose effect is replayed from a fixed starting design.
//
// Requests can also be read from YAML with Decode, which is how the
// command line applies operation files.
package operation
