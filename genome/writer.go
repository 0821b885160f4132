package genome

import (
	"bufio"
	"io"
)

// Writer writes genomes as FASTA, one unwrapped sequence line per
// contig.
type Writer struct {
	// Prepended to each contig name in header lines.
	Prefix string
	// Write each contig's trailing padding block along with its
	// bases, i.e., the whole span up to the next contig.
	IncludePadding bool
}

// WriteFASTA writes src to w using a Writer with the given prefix.
func WriteFASTA(w io.Writer, src ContigSource, prefix string) error {
	return (&Writer{Prefix: prefix}).Write(w, src)
}

// Write writes every contig of src, in src's contig order. It returns
// the first error reported by w.
func (gw *Writer) Write(w io.Writer, src ContigSource) error {
	bufw := bufio.NewWriter(w)
	contigs := src.Contigs()
	for i, contig := range contigs {
		start := contig.BeginningLocation
		end := src.CountOfBases()
		if i+1 < len(contigs) {
			end = contigs[i+1].BeginningLocation
		}
		if !gw.IncludePadding {
			end -= int64(src.Padding())
		}
		if end < start {
			end = start
		}
		bufw.WriteString(">")
		bufw.WriteString(gw.Prefix)
		bufw.WriteString(contig.Name)
		bufw.WriteByte('\n')
		bufw.Write(src.Substring(start, end-start))
		if _, err := bufw.Write([]byte{'\n'}); err != nil {
			return &IOError{Kind: "write", Err: err}
		}
	}
	if err := bufw.Flush(); err != nil {
		return &IOError{Kind: "write", Err: err}
	}
	return nil
}
