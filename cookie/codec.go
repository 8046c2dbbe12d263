package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	codecFormatVersionCurrent = 1

	nonceSize  = aes.BlockSize
	expirySize = 8
	tagSize    = sha256.Size
	keySize    = 32

	minMasterKeySize = 32

	// MaxEncodedSize bounds the base64 wire form so the value stays well
	// inside what browsers accept for a single cookie.
	MaxEncodedSize = 4096

	minBlobSize = 1 + nonceSize + expirySize
)

// ErrDecode is the single failure returned for every rejected cookie:
// bad alphabet, wrong length, unknown version, tag mismatch, or expiry
// in the past. Callers must not be able to tell these apart.
var ErrDecode = errors.New("cookie decode failed")

// ErrTooLarge is returned by Encode when the wire form would exceed
// [MaxEncodedSize].
var ErrTooLarge = errors.New("session payload too large for cookie transport")

const (
	encryptionInfo = "frontdoor cookie encryption v1"
	authInfo       = "frontdoor cookie authentication v1"
)

// Codec encrypts and authenticates opaque session payloads for cookie
// transport. Encryption and authentication keys are derived once from
// the master key via HKDF-SHA256 and held for the process lifetime.
type Codec struct {
	encKey  [keySize]byte
	authKey [keySize]byte
}

// NewCodec derives the codec key pair from masterKey. The master key
// must carry at least 256 bits of entropy; it is never retained or
// logged.
func NewCodec(masterKey []byte) (*Codec, error) {
	if len(masterKey) < minMasterKeySize {
		return nil, errors.New("master key must be at least 32 bytes")
	}

	c := &Codec{}
	if err := deriveKey(masterKey, encryptionInfo, c.encKey[:]); err != nil {
		return nil, err
	}
	if err := deriveKey(masterKey, authInfo, c.authKey[:]); err != nil {
		return nil, err
	}

	return c, nil
}

func deriveKey(master []byte, info string, out []byte) error {
	r := hkdf.New(sha256.New, master, nil, []byte(info))
	if _, err := io.ReadFull(r, out); err != nil {
		return err
	}
	return nil
}

// Encode serializes payload into the authenticated wire form:
//
//	version(1) ‖ nonce(16) ‖ ciphertext ‖ expiryUnix(8,BE) ‖ tag(32)
//
// base64url-encoded without padding. The tag covers everything before
// it, expiry included, so a shifted expiry invalidates the cookie.
func (c *Codec) Encode(payload []byte, expiry time.Time) (string, error) {
	if c == nil {
		return "", errors.New("nil codec")
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	blob := make([]byte, 0, minBlobSize+len(payload)+tagSize)
	blob = append(blob, codecFormatVersionCurrent)
	blob = append(blob, nonce...)

	block, err := aes.NewCipher(c.encKey[:])
	if err != nil {
		return "", err
	}
	ciphertext := make([]byte, len(payload))
	cipher.NewCTR(block, nonce).XORKeyStream(ciphertext, payload)
	blob = append(blob, ciphertext...)

	blob = binary.BigEndian.AppendUint64(blob, uint64(expiry.Unix()))

	mac := hmac.New(sha256.New, c.authKey[:])
	mac.Write(blob)
	blob = mac.Sum(blob)

	encoded := base64.RawURLEncoding.EncodeToString(blob)
	if len(encoded) > MaxEncodedSize {
		return "", ErrTooLarge
	}

	return encoded, nil
}

// Decode verifies and decrypts a wire-form cookie value. The tag is
// recomputed and compared in constant time before any decryption, and
// the expiry is checked against now. All rejections return [ErrDecode].
func (c *Codec) Decode(encoded string, now time.Time) ([]byte, error) {
	if c == nil || encoded == "" || len(encoded) > MaxEncodedSize {
		return nil, ErrDecode
	}

	blob, err := base64.RawURLEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, ErrDecode
	}
	if len(blob) < minBlobSize+tagSize {
		return nil, ErrDecode
	}
	if blob[0] != codecFormatVersionCurrent {
		return nil, ErrDecode
	}

	signed := blob[:len(blob)-tagSize]
	tag := blob[len(blob)-tagSize:]

	mac := hmac.New(sha256.New, c.authKey[:])
	mac.Write(signed)
	if !hmac.Equal(tag, mac.Sum(nil)) {
		return nil, ErrDecode
	}

	expiry := int64(binary.BigEndian.Uint64(signed[len(signed)-expirySize:]))
	if now.Unix() >= expiry {
		return nil, ErrDecode
	}

	nonce := signed[1 : 1+nonceSize]
	ciphertext := signed[1+nonceSize : len(signed)-expirySize]

	block, err := aes.NewCipher(c.encKey[:])
	if err != nil {
		return nil, ErrDecode
	}
	payload := make([]byte, len(ciphertext))
	cipher.NewCTR(block, nonce).XORKeyStream(payload, ciphertext)

	return payload, nil
}
