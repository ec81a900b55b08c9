package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for passwords, passphrases and derived keys once they are no longer
// needed. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
