package content

import "unicode/utf8"

// binarySampleSize is how many leading bytes are scanned for NUL, matching git's heuristic.
const binarySampleSize = 8000

// IsText reports whether content can be handed to the model as text: it must
// be valid UTF-8 and carry no NUL byte in its leading sample.
func IsText(content []byte) bool {
	sampleSize := min(len(content), binarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return false
		}
	}
	return utf8.Valid(content)
}
