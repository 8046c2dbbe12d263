// Package certify issues short-lived ed25519-signed identity
// certificates. A certificate binds a verified email address to the
// public key the account was provisioned with, so downstream services
// can trust the binding without calling back into the bridge.
package certify
