package diff

import (
	"crypto/md5"
	"fmt"
)

// Summary describes data by length and MD5 checksum.
func Summary(data []byte) string {
	return fmt.Sprintf("%d Bytes, MD5 %x", len(data), md5.Sum(data))
}

// Binary compares two byte slices by their summaries only; raw byte diffs
// are not readable.
func Binary(got, expected []byte, fromFile, toFile string) string {
	return fmt.Sprintf("%s: %s\n%s: %s", toFile, Summary(expected), fromFile, Summary(got))
}
