// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decompressor

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"
)

// Compression is a compression scheme of an ontology or data file.
type Compression int

const (
	None Compression = iota
	Gzip
	Bzip2
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	}
	return "none"
}

var magic = []struct {
	c     Compression
	bytes []byte
}{
	{Gzip, []byte("\x1f\x8b")},
	{Bzip2, []byte("BZh")},
}

// New detects whether r is gzip or bzip2 compressed and returns a reader of
// the decompressed stream. Other input is returned as is.
func New(r io.Reader) (io.Reader, error) {
	rd, _, err := Detect(r)
	return rd, err
}

// Detect is like New, but also reports the detected compression.
func Detect(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReader(r)
	buf, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, None, err
	}
	for _, m := range magic {
		if !bytes.HasPrefix(buf, m.bytes) {
			continue
		}
		switch m.c {
		case Gzip:
			zr, err := gzip.NewReader(br)
			if err != nil {
				return nil, Gzip, err
			}
			return zr, Gzip, nil
		case Bzip2:
			return bzip2.NewReader(br), Bzip2, nil
		}
	}
	return br, None, nil
}

// TrimExt removes a compression extension from a file name, so the format of
// "data.nq.gz" can be detected from ".nq".
func TrimExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".bz2":
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
