package cache

import "strconv"

// Keyer generates cache keys for the badge pipeline's cached artifacts.
// Keys are namespaced by kind so the normalization and graphic caches
// can safely share one backend.
type Keyer interface {
	// NormalizationKey keys the raw-location -> normalized-location cache.
	NormalizationKey(rawLocation string) string

	// GraphicKey keys rendered location-graphic SVGs by normalized
	// location and canvas size.
	GraphicKey(normalizedLocation string, canvasPx int) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// NormalizationKey returns "loc:" + hash(raw).
// Raw location strings come straight from user input and may contain
// anything; hashing keeps keys bounded and filesystem-safe.
func (k *DefaultKeyer) NormalizationKey(rawLocation string) string {
	return "loc:" + Hash([]byte(rawLocation))
}

// GraphicKey returns "svg:<canvas>:" + hash(normalized).
func (k *DefaultKeyer) GraphicKey(normalizedLocation string, canvasPx int) string {
	return "svg:" + strconv.Itoa(canvasPx) + ":" + Hash([]byte(normalizedLocation))
}

var _ Keyer = (*DefaultKeyer)(nil)
