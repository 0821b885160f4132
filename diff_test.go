package main

import (
	"bytes"
	"io/ioutil"
	"os"

	"gopkg.in/check.v1"
)

type diffSuite struct{}

var _ = check.Suite(&diffSuite{})

func (s *diffSuite) TestDiff(c *check.C) {
	tempdir := c.MkDir()
	err := ioutil.WriteFile(tempdir+"/f1.fa", []byte(">chr1\nACGT\n>chr2\nactgactCacgtacgt\nactgactgacgAAcgt\n"), 0700)
	c.Assert(err, check.IsNil)
	err = ioutil.WriteFile(tempdir+"/f2.fa", []byte(">chr2 with description\nactgactGacgtacgt\nactgactgacgTTcgtA\n>chr1\nACGT\n"), 0700)
	c.Assert(err, check.IsNil)

	var output bytes.Buffer
	exited := (&diffFasta{}).RunCommand("diff-fasta", []string{"-sequence", "chr2", "-offset", "1000", tempdir + "/f1.fa", tempdir + "/f2.fa"}, nil, &output, os.Stderr)
	c.Check(exited, check.Equals, 0)
	c.Check("\n"+output.String(), check.Equals, `
chr2:g.1008C>G	chr2	1008	C	G
chr2:g.1028_1029delinsTT	chr2	1028	AA	TT
chr2:g.1032_1033insA	chr2	1033		A
`)

	output.Reset()
	exited = (&diffFasta{}).RunCommand("diff-fasta", []string{"-sequence", "chr2", "-offset", "1000", "-pad-left", tempdir + "/f1.fa", tempdir + "/f2.fa"}, nil, &output, os.Stderr)
	c.Check(exited, check.Equals, 0)
	c.Check("\n"+output.String(), check.Equals, `
chr2:g.1008C>G	chr2	1008	C	G
chr2:g.1028_1029delinsTT	chr2	1028	AA	TT
chr2:g.1032_1033insA	chr2	1032	T	TA
`)

	output.Reset()
	exited = (&diffFasta{}).RunCommand("diff-fasta", []string{"-sequence", "chr1", tempdir + "/f1.fa", tempdir + "/f2.fa"}, nil, &output, os.Stderr)
	c.Check(exited, check.Equals, 0)
	c.Check(output.String(), check.Equals, "")
}

func (s *diffSuite) TestUsage(c *check.C) {
	var stderr bytes.Buffer
	exited := (&diffFasta{}).RunCommand("diff-fasta", []string{"testdata/ref.fasta"}, nil, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 2)
	c.Check(stderr.String(), check.Equals, "usage: diff-fasta [options] a.fasta b.fasta\n")
}
