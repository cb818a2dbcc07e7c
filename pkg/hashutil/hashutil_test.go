package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/rohmanhakim/element-locator/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_SHA256(t *testing.T) {
	got, err := hashutil.HashBytes([]byte("hello world"), hashutil.HashAlgoSHA256)
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", got)
}

func TestHashBytes_BLAKE3(t *testing.T) {
	data := []byte("//a[@id='submit']")
	sum := blake3.Sum256(data)

	got, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
	assert.Len(t, got, 64)
}

func TestHashBytes_UnsupportedAlgo(t *testing.T) {
	_, err := hashutil.HashBytes([]byte("x"), hashutil.HashAlgo("md5"))
	assert.Error(t, err)
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{name: "truncated", n: 12, wantLen: 12},
		{name: "zero keeps full digest", n: 0, wantLen: 64},
		{name: "oversized keeps full digest", n: 100, wantLen: 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hashutil.ShortHash([]byte("page"), hashutil.HashAlgoBLAKE3, tt.n)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestParseHashAlgo(t *testing.T) {
	algo, err := hashutil.ParseHashAlgo("blake3")
	require.NoError(t, err)
	assert.Equal(t, hashutil.HashAlgoBLAKE3, algo)

	_, err = hashutil.ParseHashAlgo("crc32")
	assert.Error(t, err)
}
