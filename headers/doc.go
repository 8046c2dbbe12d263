// Package headers decides transport-security and cache-prevention
// headers from the process-wide deployment mode: decide once at
// startup, apply consistently to every response.
//
// Production deployments are assumed to sit behind an SSL terminator,
// so the policy trusts the forwarded connection state, emits HSTS, and
// tells the session store to mark cookies secure. Development emits
// neither, which is why the builder warns at startup that cookies are
// not transport-protected.
package headers
