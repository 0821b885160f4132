package main

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"strings"

	"github.com/genomeload/refgenome/genome"
	"golang.org/x/crypto/blake2b"
)

// GenomeEntry is the on-disk form of a loaded genome.
type GenomeEntry struct {
	Padding int
	Contigs []genome.Contig
	Bases   []byte
	Blake2b [blake2b.Size256]byte
}

// WriteGenome writes g to w as a single gob-encoded GenomeEntry.
func WriteGenome(w io.Writer, g *genome.Genome) error {
	bufw := bufio.NewWriter(w)
	err := gob.NewEncoder(bufw).Encode(GenomeEntry{
		Padding: g.Padding(),
		Contigs: g.Contigs(),
		Bases:   g.Bases(),
		Blake2b: blake2b.Sum256(g.Bases()),
	})
	if err != nil {
		return err
	}
	return bufw.Flush()
}

// ReadGenome reads a genome written by WriteGenome, and verifies its
// checksum.
func ReadGenome(rdr io.Reader) (*genome.Genome, error) {
	var ent GenomeEntry
	err := gob.NewDecoder(bufio.NewReader(rdr)).Decode(&ent)
	if err != nil {
		return nil, err
	}
	if sum := blake2b.Sum256(ent.Bases); sum != ent.Blake2b {
		return nil, fmt.Errorf("checksum mismatch: data %x, header %x", sum, ent.Blake2b)
	}
	for i, contig := range ent.Contigs {
		if contig.BeginningLocation < 0 || contig.BeginningLocation+contig.Length > int64(len(ent.Bases)) {
			return nil, fmt.Errorf("contig %d (%q) out of range", i, contig.Name)
		}
	}
	return genome.Restore(ent.Bases, ent.Contigs, ent.Padding), nil
}

// isFasta reports whether fnm looks like a FASTA file rather than a
// genome archive.
func isFasta(fnm string) bool {
	fnm = strings.TrimSuffix(fnm, ".gz")
	for _, ext := range []string{".fa", ".fasta", ".fna", ".fas"} {
		if strings.HasSuffix(fnm, ext) {
			return true
		}
	}
	return false
}
