// Package session models the interaction state of an editing session.
//
// A session is always in exactly one State. Operations are checked
// against the state with Compatible before they run, and the dispatcher
// moves from one state to the next through Transition. Tracker holds the
// current state and notifies observers of changes.
package session
