// Package archive implements a compact container for named numeric buffers.
//
// An archive maps names to multi-dimensional numeric arrays, similar to an
// NPZ file but with a flat section layout and per-entry compression using
// the codecs from the compress package (Zstd by default).
//
// # Layout
//
// All integers are little-endian. The archive starts with a fixed 12-byte
// header followed by the entries back to back:
//
//	header:  magic (4) | version (1) | compression (1) | reserved (2) | entry count (4)
//	entry:   name length (2) | name | element kind (1) | ndim (1) |
//	         dims (4 each) | payload length (4) | compressed payload
//
// Entry payloads are the packed C-order little-endian element bytes of the
// source buffer; strided and big-endian views are gathered at write time, so
// readers always receive contiguous data.
//
// # Usage
//
// Writing:
//
//	w, _ := archive.NewWriter(archive.WithCompression(format.CompressionZstd))
//	_ = w.Add("weights", buf)
//	data, _ := w.Finish()
//
// Reading:
//
//	a, _ := archive.Decode(data)
//	buf, _ := a.Get("weights")
package archive
