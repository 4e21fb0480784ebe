// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII URL slugs for tags loaded without one
// (e.g. "Crème Brûlée" becomes "creme-brulee").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks      = transform.Chain(norm.NFD, transform.RemoveFunc(isMark), norm.NFC)
)

// From lowercases s, strips accents and joins the remaining ASCII letters and
// digits with single hyphens. Input without any ASCII alphanumerics yields "".
func From(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(result, "-")
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
