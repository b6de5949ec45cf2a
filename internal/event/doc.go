// Package event provides the pub/sub bus that carries command execution
// and plan lifecycle notifications between the governance core and its
// observers (UI panels, plugins, tests).
//
// The bus keeps watermill's gochannel as transport infrastructure while
// tracking subscribers directly in registration order, so synchronous
// publication preserves both ordering and Go type information. A
// panicking subscriber is recovered and logged; it never aborts delivery
// to the remaining subscribers.
package event
