package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 HashAlgo = "sha256"
	HashAlgoBLAKE3 HashAlgo = "blake3"
)

// ParseHashAlgo maps a configuration value to a supported algorithm.
func ParseHashAlgo(name string) (HashAlgo, error) {
	switch HashAlgo(name) {
	case HashAlgoSHA256, HashAlgoBLAKE3:
		return HashAlgo(name), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// HashBytes returns the hash of bytes as a hex string using the specified algorithm.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	case HashAlgoBLAKE3:
		sum := blake3.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ShortHash returns the first n hex characters of HashBytes.
// n <= 0 or n larger than the digest returns the full digest.
func ShortHash(data []byte, algo HashAlgo, n int) (string, error) {
	full, err := HashBytes(data, algo)
	if err != nil {
		return "", err
	}
	if n <= 0 || n >= len(full) {
		return full, nil
	}
	return full[:n], nil
}
