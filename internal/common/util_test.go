package common

import "testing"

func TestWipeByteArray_ZeroesSlice(t *testing.T) {
	b := []byte("secret-key")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %v", i, v)
		}
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	WipeByteArray(nil)
}
