// Package feed reads raw BMRA messages from a daily archive stream. Messages
// are terminated by '}' and may be separated by arbitrary whitespace. Streams
// compressed with gzip are detected and decompressed transparently.
package feed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

const (
	initialBufferSize = 64 * 1024
	// MaxMessageSize is the largest single message the reader accepts.
	MaxMessageSize = 1024 * 1024
)

var gzipMagic = []byte{0x1f, 0x8b}

// Split is a bufio.SplitFunc yielding one message per token, including the
// closing brace. A trailing fragment without a brace is returned as is at EOF.
func Split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, '}'); i != -1 {
		return i + 1, data[:i+1], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	message string
	err     error
}

func NewReader(r io.Reader) (*Reader, error) {
	reader := &Reader{}

	buffered := bufio.NewReader(r)
	magic, err := buffered.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to read feed: %w", err)
	}

	var source io.Reader = buffered
	if bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("unable to open gzip stream: %w", err)
		}
		reader.closers = append(reader.closers, gz)
		source = gz
	}

	reader.scanner = bufio.NewScanner(source)
	reader.scanner.Buffer(make([]byte, 0, initialBufferSize), MaxMessageSize)
	reader.scanner.Split(Split)
	return reader, nil
}

// Open returns a reader for the file at path. Closing the reader closes the file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	reader.closers = append(reader.closers, f)
	return reader, nil
}

// Next advances to the next non-blank message.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		message := bytes.TrimSpace(r.scanner.Bytes())
		if len(message) == 0 {
			continue
		}
		r.message = string(message)
		return true
	}
	r.err = r.scanner.Err()
	r.message = ""
	return false
}

// Message returns the current message with surrounding whitespace removed.
func (r *Reader) Message() string {
	return r.message
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	r.closers = nil
	return err
}

// ReadAll returns every message of the stream.
func ReadAll(r io.Reader) ([]string, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var messages []string
	for reader.Next() {
		messages = append(messages, reader.Message())
	}
	return messages, reader.Err()
}
