// Package session owns the connection to a VR runtime.
//
// A [Manager] holds at most one open runtime session and hands out the same
// [Session] to every caller of [Manager.Acquire], counting references.
// What happens when the count drops back to zero is a [TeardownPolicy]:
//
//   - [TeardownNever] keeps the runtime and session alive for the rest of
//     the process. Some runtimes misbehave when shut down and restarted
//     repeatedly; this is the default.
//   - [TeardownOnZero] destroys the session and shuts the runtime down when
//     the last reference is released. The next Acquire starts over.
//
// A missing headset or a runtime that refuses to start is not fatal:
// Acquire returns an error wrapping [hmd.ErrUnavailable] or [hmd.ErrBackend]
// and the caller may run without VR or try again later. Releasing a session
// that was never acquired is a programming error and is reported as an
// [*hmd.UnrecoverableError].
//
// Acquire and Release are safe for concurrent use.
package session
