package genome

import (
	"bufio"
	"io"
)

// EstimateSize returns an upper bound on the number of bases needed to
// load a FASTA file of the given size: every input byte yields at most
// one base, plus one padding block per contig and one at the end.
func EstimateSize(fileSize int64, paddingSize, contigs int) int64 {
	return fileSize + int64(contigs+1)*int64(paddingSize)
}

type countingReader struct {
	io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.Reader.Read(p)
	cr.n += int64(n)
	return n, err
}

// CountContigs reads rdr to the end, counting header lines and bytes,
// then seeks back to the start.
func CountContigs(rdr io.ReadSeeker, maxLineLength int) (contigs int, size int64, err error) {
	cr := &countingReader{Reader: rdr}
	scanner := bufio.NewScanner(cr)
	scanner.Buffer(nil, maxLineLength)
	for scanner.Scan() {
		if buf := scanner.Bytes(); len(buf) > 0 && buf[0] == '>' {
			contigs++
		}
	}
	if err = scanner.Err(); err != nil {
		return 0, cr.n, &IOError{Kind: "read", Err: err}
	}
	if _, err = rdr.Seek(0, io.SeekStart); err != nil {
		return 0, cr.n, &IOError{Kind: "seek", Err: err}
	}
	return contigs, cr.n, nil
}
