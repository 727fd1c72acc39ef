// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns client-supplied text into lower-case ASCII slugs that
// are safe inside file names and URL paths (e.g., "Héroïne Cape.PNG" becomes
// "heroine-cape.png").
package slug

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxStem caps the slugified stem returned by [FileName].
const MaxStem = 64

// fallbackStem names files whose stem slugifies to nothing.
const fallbackStem = "image"

// unsafeRun matches every run of characters outside [a-z0-9].
var unsafeRun = regexp.MustCompile(`[^a-z0-9]+`)

// From folds accents (é → e), lower-cases s and collapses every run of other
// characters into a single hyphen. Leading and trailing hyphens are dropped,
// so the result may be empty.
func From(s string) string {
	// A transform.Transformer keeps state, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	return strings.Trim(unsafeRun.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}

// FileName slugifies the last element of a client-supplied path.
//
// Both "/" and "\" separate directories. The extension is kept, lower-cased
// and reduced to [a-z0-9]; the stem is slugified with [From], cut to
// [MaxStem] characters and replaced by "image" when nothing survives.
func FileName(original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	rawExt := path.Ext(base)

	ext := unsafeRun.ReplaceAllString(strings.ToLower(rawExt), "")
	if ext != "" {
		ext = "." + ext
	}

	stem := From(strings.TrimSuffix(base, rawExt))
	if len(stem) > MaxStem {
		stem = strings.TrimRight(stem[:MaxStem], "-")
	}
	if stem == "" {
		stem = fallbackStem
	}

	return stem + ext
}
