// Package search implementa normalización de texto para búsquedas
// insensibles a mayúsculas y tildes (los nombres comerciales y de pacientes
// vienen con acentos: "Jiménez", "Acetaminofén").
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold normaliza un texto a minúsculas sin diacríticos: "Jiménez" -> "jimenez".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Entrada no normalizable: degradar a solo minúsculas
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// Contains indica si haystack contiene needle, ignorando mayúsculas y tildes.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
