package main

import (
	"bytes"
	"encoding/gob"
	"strings"

	"github.com/genomeload/refgenome/genome"
	"gopkg.in/check.v1"
)

type gobSuite struct{}

var _ = check.Suite(&gobSuite{})

func (s *gobSuite) TestRoundTrip(c *check.C) {
	ldr := genome.Loader{PaddingSize: 5}
	g, err := ldr.Load(strings.NewReader(">b\nACGT\n>a\nGG\n"), 0)
	c.Assert(err, check.IsNil)

	var buf bytes.Buffer
	c.Assert(WriteGenome(&buf, g), check.IsNil)
	g2, err := ReadGenome(&buf)
	c.Assert(err, check.IsNil)
	c.Check(g2.Contigs(), check.DeepEquals, g.Contigs())
	c.Check(g2.Bases(), check.DeepEquals, g.Bases())
	c.Check(g2.Padding(), check.Equals, 5)
	contig, ok := g2.ContigByName("a")
	c.Check(ok, check.Equals, true)
	c.Check(string(g2.Sequence(contig)), check.Equals, "GG")
}

func (s *gobSuite) TestChecksumMismatch(c *check.C) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(GenomeEntry{
		Contigs: []genome.Contig{{Name: "a", Length: 4}},
		Bases:   []byte("ACGT"),
	})
	c.Assert(err, check.IsNil)
	_, err = ReadGenome(&buf)
	c.Check(err, check.ErrorMatches, `checksum mismatch: .*`)
}

func (s *gobSuite) TestIsFasta(c *check.C) {
	for fnm, expect := range map[string]bool{
		"ref.fa":        true,
		"ref.fasta.gz":  true,
		"ref.fna":       true,
		"ref.genome":    false,
		"ref.genome.gz": false,
	} {
		c.Check(isFasta(fnm), check.Equals, expect, check.Commentf("%s", fnm))
	}
}
