// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const badBodyTypeMsg = "fetch/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyReader converts a generic body parameter to a byte stream and
// declared content length for use as a request body.
//
// The body parameter may be nil, or it may be a string, []byte,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If body is nil, a nil reader, a zero length, and no error are
// returned.
//
// • If body is a string or []byte, a reader over its contents and its
// length are returned.
//
// • If body is an io.Reader or io.ReadCloser, body itself and the
// unknown-length sentinel -1 are returned; the stream is not buffered
// or otherwise consumed here.
//
// • If body is any other type than those listed above, a nil reader
// and an error are returned.
func BodyReader(body interface{}) (io.Reader, int64, error) {
	switch x := body.(type) {
	case nil:
		return nil, 0, nil
	case string:
		return strings.NewReader(x), int64(len(x)), nil
	case []byte:
		return bytes.NewReader(x), int64(len(x)), nil
	case io.Reader:
		return x, -1, nil
	default:
		return nil, 0, errors.New(badBodyTypeMsg)
	}
}
