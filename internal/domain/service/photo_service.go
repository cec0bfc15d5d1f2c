package service

// PhotoNormalizer resizes and re-encodes uploaded profile photos.
// Output is always JPEG, bounded by the configured maximum dimension
// with the aspect ratio preserved. Images already within bounds are
// re-encoded without resizing.
type PhotoNormalizer interface {
	// Normalize decodes src, scales it down if needed and returns
	// JPEG bytes. Undecodable input returns an error and no output.
	Normalize(src []byte) ([]byte, error)
}
