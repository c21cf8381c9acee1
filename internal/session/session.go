// Package session implements the session lifecycle manager: it acquires,
// persists, validates and silently renews the short-lived bearer
// credential used to authorize backend calls, and signals consumers when
// the session becomes invalid.
package session

import "github.com/felixgeelhaar/merchdesk/internal/platform"

// State is the coarse session state machine.
//
// signed-out → authenticating → signed-in, with signed-in → signed-out
// reachable from any renewal failure or explicit logout, and
// authenticating → signed-out from login failure.
type State int

const (
	// StateSignedOut means no usable session exists.
	StateSignedOut State = iota
	// StateAuthenticating means a login or initialization is in flight.
	StateAuthenticating
	// StateSignedIn means a valid session is held.
	StateSignedIn
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateSignedIn:
		return "signed-in"
	default:
		return "signed-out"
	}
}

// Session is the client-side record of authentication state.
//
// Invariant: Authenticated implies a non-empty Token and non-nil User.
// The Manager owns the Session exclusively; consumers only ever see
// immutable Snapshots.
type Session struct {
	Token         string
	Authenticated bool
	User          *platform.User
	Err           string
}

// Snapshot is an immutable copy of the session handed to subscribers
// and callers.
type Snapshot struct {
	State         State
	Token         string
	Authenticated bool
	User          *platform.User
	Err           string
}
