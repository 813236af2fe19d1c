package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainEnum = "caseset/enum/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EnumHash computes the content-addressed identity of a compiled enum.
// Case order is significant; attribute key order is not.
func EnumHash(spec EnumSpec) (string, error) {
	cases := make(IRArray, len(spec.Cases))
	for i, c := range spec.Cases {
		obj := IRObject{"name": IRString(c.Name)}
		if c.Value != nil {
			obj["value"] = c.Value
		}
		if len(c.Attributes) > 0 {
			obj["attributes"] = c.Attributes
		}
		cases[i] = obj
	}

	canonical, err := MarshalCanonical(IRObject{
		"name":    IRString(spec.Name),
		"backing": IRString(spec.Backing),
		"cases":   cases,
	})
	if err != nil {
		return "", fmt.Errorf("EnumHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEnum, canonical), nil
}

// MustEnumHash is like EnumHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEnumHash(spec EnumSpec) string {
	hash, err := EnumHash(spec)
	if err != nil {
		panic(err)
	}
	return hash
}
