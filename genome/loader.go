package genome

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultPaddingSize is the number of 'n' bases inserted before
	// each contig and after the last one.
	DefaultPaddingSize = 500

	// DefaultMaxLineLength bounds the line buffer.
	DefaultMaxLineLength = 1 << 30
)

// Loader parses FASTA files into a Sink. The zero value loads
// contigs with no padding, naming each contig by its entire header
// line.
type Loader struct {
	// Characters that end a contig name in a header line (the
	// line terminator always does). Ignored if Tag is set.
	PieceNameTerminators string
	// Also end contig names at the first space or tab.
	SpaceIsTerminator bool
	PaddingSize       int
	// If not empty, contig names are taken from the value of this
	// pipe-delimited tag (e.g., "ref" in ">gi|1|ref|NC_1.1|"), and a
	// header without the tag is an error.
	Tag    string
	Remap  RemapTable
	AltMap AltContigMap

	MaxLineLength int
	Logger        logrus.FieldLogger
}

var validBase = [256]bool{'A': true, 'C': true, 'G': true, 'T': true, 'n': true}

// Normalize converts seq in place to the loaded genome alphabet:
// upper case, with 'N' converted to 'n', and any other character
// outside {A,C,G,T} replaced by 'N'. It returns the offset of the
// first replaced character (or -1) and its upper-cased value.
func Normalize(seq []byte) (first int, invalid byte) {
	first = -1
	for i, b := range seq {
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		if b == 'N' {
			b = 'n'
		}
		if !validBase[b] {
			if first < 0 {
				first, invalid = i, b
			}
			b = 'N'
		}
		seq[i] = b
	}
	return
}

func (ldr *Loader) logger() logrus.FieldLogger {
	if ldr.Logger == nil {
		return logrus.StandardLogger()
	}
	return ldr.Logger
}

func (ldr *Loader) maxLineLength() int {
	if ldr.MaxLineLength <= 0 {
		return DefaultMaxLineLength
	}
	return ldr.MaxLineLength
}

// LoadFile loads the named FASTA file into a new Genome.
func (ldr *Loader) LoadFile(path string) (*Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Kind: "open", Path: path, Err: err}
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, &IOError{Kind: "stat", Path: path, Err: err}
	}
	g, err := ldr.Load(f, fi.Size())
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return g, nil
}

// Load loads a FASTA genome from rdr, which must be positioned at the
// start of the data. It reads the input twice: once to count contigs
// and size the genome, and again to load it.
//
// fileSize is a hint. If the input turns out to be longer (e.g., it
// is decompressed on the fly), the counted size is used instead.
func (ldr *Loader) Load(rdr io.ReadSeeker, fileSize int64) (*Genome, error) {
	if ldr.PaddingSize < 0 {
		return nil, errInvalidPadding(ldr.PaddingSize)
	}
	ncontigs, scanned, err := CountContigs(rdr, ldr.maxLineLength())
	if err != nil {
		return nil, err
	}
	if scanned > fileSize {
		fileSize = scanned
	}
	g := New(EstimateSize(fileSize, ldr.PaddingSize, ncontigs), ldr.PaddingSize, ncontigs+1)
	loaded, err := ldr.Parse(g, rdr)
	if err != nil {
		return nil, err
	}
	if loaded != ncontigs {
		return nil, errors.Wrapf(ErrContigCountMismatch, "counted %d, loaded %d", ncontigs, loaded)
	}
	ldr.logger().WithFields(logrus.Fields{
		"Contigs": loaded,
		"Bases":   g.CountOfBases(),
	}).Debug("genome loaded")
	return g, nil
}

// Parse reads FASTA data from rdr and feeds it to sink, then finalizes
// the sink. It returns the number of contigs loaded.
func (ldr *Loader) Parse(sink Sink, rdr io.Reader) (int, error) {
	if ldr.PaddingSize < 0 {
		return 0, errInvalidPadding(ldr.PaddingSize)
	}
	padding := bytes.Repeat([]byte{'n'}, ldr.PaddingSize)
	inContig := false
	warned := false
	var orig []byte
	contigs := 0
	lineno := 0
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(nil, ldr.maxLineLength())
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) > 0 && line[0] == '>' {
			inContig = true
			sink.AppendData(padding)
			name, err := ldr.contigName(string(line))
			if err != nil {
				return contigs, errors.Wrapf(err, "line %d", lineno)
			}
			if ldr.AltMap != nil {
				ldr.AltMap.AddFastaContig(string(line), name)
			}
			sink.StartContig(name, ldr.AltMap)
			contigs++
			continue
		}
		if !inContig {
			return 0, &FormatError{Line: lineno, Msg: "FASTA file doesn't begin with a contig name (i.e., the first line doesn't start with '>')"}
		}
		if !warned {
			orig = append(orig[:0], line...)
		}
		if bad, _ := Normalize(line); bad >= 0 && !warned {
			ldr.logger().Warnf("line %d: FASTA file contained a character that's not a valid base (or N): %q, full line %q; converting to 'N'. This may happen again, but there will be no more warnings.", lineno, orig[bad], orig)
			warned = true
		}
		sink.AppendData(line)
	}
	if err := scanner.Err(); err != nil {
		return contigs, &IOError{Kind: "read", Err: err}
	}
	sink.AppendData(padding)
	sink.FillInContigLengths()
	if ldr.AltMap != nil {
		sink.AdjustAltContigs(ldr.AltMap)
	}
	sink.SortContigsByName()
	return contigs, nil
}

func errInvalidPadding(n int) error {
	return fmt.Errorf("invalid padding size %d", n)
}

// contigName returns the (possibly remapped) contig name for a header
// line.
func (ldr *Loader) contigName(header string) (string, error) {
	var name string
	if ldr.Tag != "" {
		value, found, err := FindTagValue(header, ldr.Tag)
		if err != nil {
			return "", err
		} else if !found {
			return "", &MissingTagError{Tag: ldr.Tag, Header: header[1:]}
		}
		name = value
	} else {
		terminators := ldr.PieceNameTerminators + "\r\n"
		if ldr.SpaceIsTerminator {
			terminators += " \t"
		}
		name = header[1:]
		if i := indexAnyByte(name, terminators); i >= 0 {
			name = name[:i]
		}
	}
	if ldr.Remap != nil {
		name = ldr.Remap.Resolve(name)
	}
	return name, nil
}

// indexAnyByte is strings.IndexAny for single-byte characters, so
// that non-ASCII terminators are matched bytewise.
func indexAnyByte(s, chars string) int {
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(chars); j++ {
			if s[i] == chars[j] {
				return i
			}
		}
	}
	return -1
}

// String describes the naming configuration, for log messages.
func (ldr *Loader) String() string {
	if ldr.Tag != "" {
		return fmt.Sprintf("tag %q, padding %d", ldr.Tag, ldr.PaddingSize)
	}
	return fmt.Sprintf("terminators %q, space %v, padding %d", ldr.PieceNameTerminators, ldr.SpaceIsTerminator, ldr.PaddingSize)
}
