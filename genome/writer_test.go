package genome

import (
	"bufio"
	"bytes"
	"errors"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/check.v1"
)

type writerSuite struct{}

var _ = check.Suite(&writerSuite{})

func (s *writerSuite) TestWrite(c *check.C) {
	ldr := Loader{PaddingSize: 3, SpaceIsTerminator: true}
	g, err := ldr.Load(strings.NewReader(">chr1 desc\nACgt\nnN\n>chr2\nAC\nZZ\n"), 0)
	c.Assert(err, check.IsNil)

	var buf bytes.Buffer
	err = WriteFASTA(&buf, g, "")
	c.Assert(err, check.IsNil)
	c.Check(buf.String(), check.Equals, ">chr1\nACGTnn\n>chr2\nACNN\n")

	buf.Reset()
	err = (&Writer{Prefix: "GRCh38_", IncludePadding: true}).Write(&buf, g)
	c.Assert(err, check.IsNil)
	c.Check(buf.String(), check.Equals, ">GRCh38_chr1\nACGTnnnnn\n>GRCh38_chr2\nACNNnnn\n")
}

func (s *writerSuite) TestWriteEmpty(c *check.C) {
	var buf bytes.Buffer
	err := WriteFASTA(&buf, New(0, 0, 0), "")
	c.Check(err, check.IsNil)
	c.Check(buf.Len(), check.Equals, 0)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func (s *writerSuite) TestWriteError(c *check.C) {
	ldr := Loader{PaddingSize: 1}
	g, err := ldr.Load(strings.NewReader(">chr1\nACGT\n"), 0)
	c.Assert(err, check.IsNil)
	err = WriteFASTA(failWriter{}, g, "")
	c.Assert(err, check.FitsTypeOf, &IOError{})
	c.Check(err, check.ErrorMatches, `write: disk full`)
}

func (s *writerSuite) TestRoundTrip(c *check.C) {
	rnd := rand.New(rand.NewSource(2))
	logger, _ := test.NewNullLogger()
	for trial := 0; trial < 20; trial++ {
		fasta, names, seqs := randomFasta(rnd, 1+rnd.Intn(8))
		ldr := Loader{PaddingSize: rnd.Intn(10), SpaceIsTerminator: true, Logger: logger}
		g, err := ldr.Load(strings.NewReader(fasta), int64(len(fasta)))
		c.Assert(err, check.IsNil)

		var buf bytes.Buffer
		c.Assert(WriteFASTA(&buf, g, ""), check.IsNil)

		var gotNames, gotSeqs []string
		scanner := bufio.NewScanner(&buf)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, ">") {
				gotNames = append(gotNames, line[1:])
				gotSeqs = append(gotSeqs, "")
			} else {
				gotSeqs[len(gotSeqs)-1] += line
			}
		}
		c.Assert(scanner.Err(), check.IsNil)
		c.Check(gotNames, check.DeepEquals, names)
		for i, seq := range seqs {
			want := []byte(seq)
			Normalize(want)
			c.Check(gotSeqs[i], check.Equals, string(want))
		}
	}
}
