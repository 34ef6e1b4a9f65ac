package letter

import (
	"fmt"
	"hash/adler32"
	"io"
	"os"
	"strconv"
)

// Fingerprint computes the adler32 checksum over the full byte stream.
// It is an identity token, not a cryptographic hash; collisions are tolerated.
func Fingerprint(r io.Reader) (uint32, error) {
	h := adler32.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum32(), nil
}

// FingerprintFile fingerprints the file at path and returns the decimal
// string encoding stored in the database.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum, err := Fingerprint(f)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return strconv.FormatUint(uint64(sum), 10), nil
}
