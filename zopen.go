package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// zopen returns a reader for the given file, transparently
// decompressing the input if fnm ends with ".gz".
func zopen(fnm string) (io.ReadCloser, error) {
	f, err := os.Open(fnm)
	if err != nil || !strings.HasSuffix(fnm, ".gz") {
		return f, err
	}
	rdr, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipr{rdr, f}, nil
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// zcreate returns a writer for the given file, compressing the output
// if fnm ends with ".gz".
func zcreate(fnm string) (io.WriteCloser, error) {
	f, err := os.OpenFile(fnm, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil || !strings.HasSuffix(fnm, ".gz") {
		return f, err
	}
	return gzipw{pgzip.NewWriter(f), f}, nil
}

type gzipw struct {
	io.WriteCloser
	f *os.File
}

func (gw gzipw) Close() error {
	e1 := gw.WriteCloser.Close()
	e2 := gw.f.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

var errSeekUnsupported = errors.New("rewinder: can only seek to start of file")

// rewinder is an io.ReadSeeker that supports seeking back to the start
// of a file by reopening it. This makes compressed files usable for
// two-pass loading.
type rewinder struct {
	fnm string
	io.ReadCloser
}

func openRewinder(fnm string) (*rewinder, error) {
	rdr, err := zopen(fnm)
	if err != nil {
		return nil, err
	}
	return &rewinder{fnm: fnm, ReadCloser: rdr}, nil
}

func (rw *rewinder) Seek(offset int64, whence int) (int64, error) {
	if offset != 0 || whence != io.SeekStart {
		return 0, errSeekUnsupported
	}
	if s, ok := rw.ReadCloser.(io.Seeker); ok {
		return s.Seek(0, io.SeekStart)
	}
	rw.ReadCloser.Close()
	rdr, err := zopen(rw.fnm)
	if err != nil {
		return 0, err
	}
	rw.ReadCloser = rdr
	return 0, nil
}
