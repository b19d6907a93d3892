// Package crypto encrypts, decrypts and masks sensitive values such as the
// driver's national identity number. AES-256-CBC with a random IV per value;
// ciphertext and IV are stored together as "cipher:iv" (hex) so decryption
// is self-contained.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
)

const ivLength = 16

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

type Encryptor struct {
	key []byte
}

// NewEncryptor builds an Encryptor from a secret of at least 32 characters.
// Only the first 32 bytes are used as the AES-256 key.
func NewEncryptor(key string) (*Encryptor, error) {
	if len(key) < 32 {
		return nil, errors.New("encryption key must be at least 32 characters")
	}
	return &Encryptor{key: []byte(key[:32])}, nil
}

// Encrypt returns "cipherhex:ivhex" for the given plaintext. Values already
// containing the delimiter are assumed encrypted and returned unchanged, so
// re-saving a stored record never double-encrypts.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" || strings.Contains(plaintext, ":") {
		return plaintext, nil
	}

	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext) + ":" + hex.EncodeToString(iv), nil
}

// Decrypt reverses Encrypt. Input must be in "cipherhex:ivhex" form.
func (e *Encryptor) Decrypt(encrypted string) (string, error) {
	parts := strings.SplitN(encrypted, ":", 2)
	if len(parts) != 2 {
		return "", ErrMalformedCiphertext
	}
	ciphertext, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	iv, err := hex.DecodeString(parts[1])
	if err != nil || len(iv) != ivLength {
		return "", ErrMalformedCiphertext
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, block.BlockSize())
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

// MaskNationalID hides all but the last four digits of a 12-digit national
// identity number. Anything else comes back fully masked.
func MaskNationalID(id string) string {
	if len(id) != 12 {
		return "XXXX XXXX XXXX"
	}
	return "XXXX XXXX " + id[len(id)-4:]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrMalformedCiphertext
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, ErrMalformedCiphertext
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, ErrMalformedCiphertext
		}
	}
	return data[:len(data)-padding], nil
}
