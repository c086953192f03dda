package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"guardian/internal/util/memzero"
)

const (
	// The current supported version of the sealed blob format stored on disk.
	sealedFormatVersion = 1
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// sealed file has been modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or tampered storage")

// sealedBlob is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Sealer encrypts stored values with a passphrase-derived key.
type Sealer struct {
	passphrase string
	n, r, p    int
}

// NewSealer returns a Sealer using the default scrypt cost.
func NewSealer(passphrase string) *Sealer {
	n, r, p := scryptParamsDefault()
	return &Sealer{passphrase: passphrase, n: n, r: r, p: p}
}

// Seal derives a fresh key and seals raw into a JSON blob. The key name is
// bound as associated data so a blob cannot be swapped between keys.
func (s *Sealer) Seal(key string, raw []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	k, err := scrypt.Key([]byte(s.passphrase), salt[:], s.n, s.r, s.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k)

	aead, err := chacha20poly1305.New(k)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; every seal draws a new salt and key
	ct := aead.Seal(nil, nonce[:], raw, additionalData(key, salt[:]))

	return json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      s.n,
		R:      s.r,
		P:      s.p,
		Cipher: ct,
	})
}

// Open reverses Seal.
func (s *Sealer) Open(key string, b []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed format version %d", bl.V)
	}
	// The cost parameters come from disk; never exceed what Seal writes.
	if bl.N < 2 || bl.N > s.n || bl.R < 1 || bl.R > s.r || bl.P < 1 || bl.P > s.p {
		return nil, fmt.Errorf("%w: %s: scrypt parameters N=%d r=%d p=%d out of range",
			ErrCorrupt, key, bl.N, bl.R, bl.P)
	}

	k, err := scrypt.Key([]byte(s.passphrase), bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(k)

	aead, err := chacha20poly1305.New(k)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, additionalData(key, bl.Salt))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func additionalData(key string, salt []byte) []byte {
	return append([]byte(key+":"), salt...)
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
