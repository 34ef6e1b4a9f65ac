package letter

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintKnownValue(t *testing.T) {
	// adler32("Wikipedia") = 0x11E60398
	sum, err := Fingerprint(bytes.NewReader([]byte("Wikipedia")))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11E60398), sum)
}

func TestFingerprintDeterministic(t *testing.T) {
	payload := bytes.Repeat([]byte("%PDF-1.4 lorem ipsum "), 1024)

	first, err := Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	second, err := Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFingerprintDiffersForDifferentContent(t *testing.T) {
	a, err := Fingerprint(bytes.NewReader([]byte("letter to alice")))
	require.NoError(t, err)
	b, err := Fingerprint(bytes.NewReader([]byte("letter to bob")))
	require.NoError(t, err)

	// Not guaranteed in general (checksum), but holds for these inputs.
	assert.NotEqual(t, a, b)
}

func TestFingerprintFileMatchesStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.pdf")
	payload := []byte("%PDF-1.4 test letter")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	fromFile, err := FingerprintFile(path)
	require.NoError(t, err)

	sum, err := Fingerprint(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(sum), 10), fromFile)
}

func TestFingerprintFileMissing(t *testing.T) {
	_, err := FingerprintFile(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}
