// Package assetid generates family product codes and asset identifiers.
package assetid

import (
	"fmt"
	"strings"

	"github.com/erazemk/assetdesk/internal/model"
)

// Fallback product codes.
const (
	FallbackCode       = "GEN"
	ImportFallbackCode = "IMP"
)

// Code lengths of families created by hand and by import.
const (
	FamilyCodeLength = 4
	ImportCodeLength = 3
)

// ProductCode returns the uppercased first n characters of a family name,
// or FallbackCode when the name is blank.
func ProductCode(name string, n int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackCode
	}
	runes := []rune(name)
	if len(runes) > n {
		runes = runes[:n]
	}
	return strings.ToUpper(string(runes))
}

// Prefix is the leading segment of an asset ID for an asset type.
func Prefix(assetType string) string {
	if assetType == model.AssetTypeLicense {
		return "SOFT"
	}
	return "HARD"
}

// Sequence zero-pads a sequence number to four digits.
func Sequence(n int) string {
	return fmt.Sprintf("%04d", n)
}

// Tag builds an asset ID from its parts. An empty code is replaced by
// fallback.
func Tag(assetType, code, fallback string, seq int) string {
	if code == "" {
		code = fallback
	}
	return Prefix(assetType) + "-" + code + "-" + Sequence(seq)
}
