// Package framing implements newline-delimited framing over byte streams.
package framing

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxLineBytes bounds how much of a single line the reader will
// buffer before giving up on the stream.
const DefaultMaxLineBytes = 1 << 20 // 1 MiB

// ErrLineTooLong reports a line exceeding the reader's limit. The stream
// cannot be resynchronized past an oversized line, so the error is terminal.
var ErrLineTooLong = errors.New("framing: line exceeds maximum length")

// LineReader turns a byte stream of arbitrary read fragmentation into a
// sequence of complete lines. It is forward-only and single-consumer: one
// reader owns one stream.
type LineReader struct {
	r   *bufio.Reader
	max int
	err error
}

func NewLineReader(r io.Reader, maxLineBytes int) *LineReader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &LineReader{r: bufio.NewReader(r), max: maxLineBytes}
}

// ReadLine returns the next non-blank line with the terminator and
// surrounding whitespace stripped. Blank lines carry no payload and are
// skipped. At end of stream a non-empty unterminated residual is returned as
// one final line, tolerating clients that omit the trailing newline; after
// that, and on a clean end of stream, ReadLine returns io.EOF. All errors are
// sticky.
func (lr *LineReader) ReadLine() ([]byte, error) {
	if lr.err != nil {
		return nil, lr.err
	}
	for {
		raw, err := lr.readRaw()
		if err != nil && !errors.Is(err, io.EOF) {
			lr.err = err
			return nil, lr.err
		}
		atEOF := errors.Is(err, io.EOF)

		line := bytes.TrimSpace(raw)
		if len(line) > lr.max {
			lr.err = ErrLineTooLong
			return nil, lr.err
		}
		if len(line) > 0 {
			if atEOF {
				lr.err = io.EOF
			}
			return line, nil
		}
		if atEOF {
			lr.err = io.EOF
			return nil, lr.err
		}
	}
}

// readRaw accumulates bytes up to and including the next terminator,
// buffering partial reads across chunk boundaries however the underlying
// stream fragments them.
func (lr *LineReader) readRaw() ([]byte, error) {
	var line []byte
	for {
		frag, err := lr.r.ReadSlice('\n')
		line = append(line, frag...)
		if len(line) > lr.max+1 {
			return nil, ErrLineTooLong
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, err
	}
}

// WriteLine writes p to w followed by exactly one line terminator.
func WriteLine(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("write terminator: %w", err)
	}
	return nil
}
