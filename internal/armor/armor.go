// Package armor provides a way to encode signature bytes as ASCII for pasting into
// text-only channels. The canonical on-disk signature format (§6) remains raw binary;
// this is strictly an optional presentation layer, adapted from veil's pkg/veil/armor.
package armor

import (
	"encoding/base64"
	"io"

	"github.com/emersion/go-textwrapper"
)

// NewEncoder returns an io.WriteCloser which armors data before writing it to dst.
func NewEncoder(dst io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.StdEncoding, textwrapper.New(dst, "\n", 76))
}

// NewDecoder returns an io.Reader which de-armors data after reading it from src.
func NewDecoder(src io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, src)
}
