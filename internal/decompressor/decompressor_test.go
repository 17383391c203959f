package decompressor

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const data = "<a> <b> <c> .\n"

func gzipped(t testing.TB, s string) io.Reader {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

// "cayley data\n" compressed with bzip2
var bzipped = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xb5, 0x4b, 0xe3, 0xc4, 0x00, 0x00,
	0x02, 0xd1, 0x80, 0x00, 0x10, 0x40, 0x00, 0x2e, 0x04, 0x04, 0x20, 0x20, 0x00, 0x31, 0x06, 0x4c,
	0x41, 0x4c, 0x1e, 0xa7, 0xa9, 0x2a, 0x18, 0x26, 0xb1, 0xc2, 0xee, 0x48, 0xa7, 0x0a, 0x12, 0x16,
	0xa9, 0x7c, 0x78, 0x80,
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		input  io.Reader
		comp   Compression
		expect string
	}{
		{"text", strings.NewReader(data), None, data},
		{"short", strings.NewReader("x"), None, "x"},
		{"empty", strings.NewReader(""), None, ""},
		{"gzip", gzipped(t, data), Gzip, data},
		{"bzip2", bytes.NewReader(bzipped), Bzip2, "cayley data\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, comp, err := Detect(c.input)
			require.NoError(t, err)
			require.Equal(t, c.comp, comp)
			got, err := ioutil.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, c.expect, string(got))
		})
	}
}

func TestDetectErrors(t *testing.T) {
	_, err := New(strings.NewReader("\x1f\x8bcayley data\n"))
	require.Equal(t, gzip.ErrHeader, err)

	r, err := New(strings.NewReader("BZhcayley data\n"))
	require.NoError(t, err)
	_, err = ioutil.ReadAll(r)
	require.IsType(t, bzip2.StructuralError(""), err)
}

func TestTrimExt(t *testing.T) {
	require.Equal(t, "data.nq", TrimExt("data.nq.gz"))
	require.Equal(t, "data.nq", TrimExt("data.nq.BZ2"))
	require.Equal(t, "data.jsonld", TrimExt("data.jsonld"))
}
