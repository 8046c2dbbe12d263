// Package internal contains helper packages that are intentionally private to
// frontdoor.
//
// # Sub-packages
//
//   - rate — Redis-backed fixed-window throttle primitives used by the Engine's
//     throttle operations
//
// # What this package must NOT do
//
//   - Export types that appear in the public frontdoor API.
//   - Be imported by any package outside the frontdoor module.
package internal
