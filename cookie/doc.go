// Package cookie implements the encrypted, tamper-evident wire format
// for client-held session state.
//
// The codec is encrypt-then-MAC: AES-256-CTR for confidentiality,
// HMAC-SHA256 over version, nonce, ciphertext, and expiry for
// authenticity. Both keys are derived from a single master key with
// HKDF-SHA256 under distinct info labels, so the two keys can never
// collide even when operators supply exactly 32 bytes.
//
// Decode fails closed: tampering, truncation, re-encoding, and expiry
// all collapse into the single sentinel [ErrDecode]. Callers are
// expected to treat any failure as "no session" and start a fresh one;
// distinguishing failure causes to a client would hand an attacker an
// oracle about the cookie internals.
package cookie
