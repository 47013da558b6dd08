// Package weapi builds the signed request envelope expected by the Netease weapi endpoints.
//
// A payload is encrypted twice with AES-128-CBC, first under a fixed public key and then
// under a fresh per-request key. The per-request key is reversed and sealed with the
// upstream RSA key without padding. Every step must match the upstream client bit for bit.
package weapi

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	_ "embed"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/url"
	"unicode/utf8"
)

//go:embed netease.pub
var publicKeyPEM []byte

const (
	presetKey = "0CoJUm6Qyw8W8jud"
	iv        = "0102030405060708"
	base62    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keySize   = 16
	rsaBlock  = 128
)

// Stage identifies the step of envelope construction that failed.
type Stage int

const (
	StageGenRandomNumber Stage = iota + 1
	StageImportPubKey
	StageEncodeSource
	StageEncodeRevStr
	StageEncodeData
	StageEncodeKey
)

func (s Stage) String() string {
	switch s {
	case StageGenRandomNumber:
		return "GenRandomNumber"
	case StageImportPubKey:
		return "ImportPubKey"
	case StageEncodeSource:
		return "EncodeSource"
	case StageEncodeRevStr:
		return "EncodeRevStr"
	case StageEncodeData:
		return "EncodeData"
	case StageEncodeKey:
		return "EncodeKey"
	default:
		return "Unknown"
	}
}

// EncodeError reports a local, non-transient envelope failure.
type EncodeError struct {
	Stage Stage
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("weapi %s: %v", e.Stage, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Envelope is the only value ever sent as a weapi request body.
type Envelope struct {
	Params    string `json:"params"`
	EncSecKey string `json:"encSecKey"`
}

// Form returns the envelope as form values.
func (e Envelope) Form() url.Values {
	return url.Values{
		"params":    {e.Params},
		"encSecKey": {e.EncSecKey},
	}
}

// Encoder is safe for concurrent use as long as its random source is.
type Encoder struct {
	random io.Reader
	pub    *rsa.PublicKey
}

// NewEncoder parses the bundled public key. A nil random source selects crypto/rand.
func NewEncoder(random io.Reader) (*Encoder, error) {
	if random == nil {
		random = rand.Reader
	}
	pub, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return nil, &EncodeError{Stage: StageImportPubKey, Err: err}
	}
	return &Encoder{random: random, pub: pub}, nil
}

// EncodeJSON marshals v and encodes the resulting text.
func (e *Encoder) EncodeJSON(v any) (Envelope, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, &EncodeError{Stage: StageEncodeSource, Err: err}
	}
	return e.Encode(string(data))
}

// Encode turns a plaintext payload into a signed envelope.
func (e *Encoder) Encode(plaintext string) (Envelope, error) {
	secret, err := e.secretKey()
	if err != nil {
		return Envelope{}, err
	}

	first, err := encryptCBC([]byte(presetKey), []byte(plaintext))
	if err != nil {
		return Envelope{}, &EncodeError{Stage: StageEncodeSource, Err: err}
	}
	second, err := encryptCBC(secret, []byte(base64.StdEncoding.EncodeToString(first)))
	if err != nil {
		return Envelope{}, &EncodeError{Stage: StageEncodeData, Err: err}
	}

	reversed := make([]byte, len(secret))
	for i, b := range secret {
		reversed[len(secret)-1-i] = b
	}
	if !utf8.Valid(reversed) {
		return Envelope{}, &EncodeError{Stage: StageEncodeRevStr, Err: errors.New("reversed key is not valid utf-8")}
	}

	sealed, err := rawEncrypt(e.pub, reversed)
	if err != nil {
		return Envelope{}, &EncodeError{Stage: StageEncodeKey, Err: err}
	}

	return Envelope{
		Params:    base64.StdEncoding.EncodeToString(second),
		EncSecKey: hex.EncodeToString(sealed),
	}, nil
}

// secretKey draws 16 random bytes and maps each one into the base62 alphabet by modulo.
// The modulo leaves the distribution skewed towards the first characters; the upstream
// client derives its key the same way and the skew is kept for compatibility.
func (e *Encoder) secretKey() ([]byte, error) {
	raw := make([]byte, keySize)
	if _, err := io.ReadFull(e.random, raw); err != nil {
		return nil, &EncodeError{Stage: StageGenRandomNumber, Err: err}
	}
	for i, b := range raw {
		raw[i] = base62[int(b)%len(base62)]
	}
	return raw, nil
}

func encryptCBC(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(iv)).CryptBlocks(out, padded)
	return out, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

// rawEncrypt computes m^e mod n over the message left-padded with zeros to 128 bytes.
func rawEncrypt(pub *rsa.PublicKey, msg []byte) ([]byte, error) {
	if len(msg) > rsaBlock {
		return nil, fmt.Errorf("message of %d bytes exceeds %d", len(msg), rsaBlock)
	}
	padded := make([]byte, rsaBlock)
	copy(padded[rsaBlock-len(msg):], msg)

	m := new(big.Int).SetBytes(padded)
	if m.Cmp(pub.N) >= 0 {
		return nil, errors.New("message too large for key")
	}
	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)
	return c.FillBytes(make([]byte, pub.Size())), nil
}

func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected key type %T", key)
	}
	return pub, nil
}
