package main

import (
	"bytes"
	"os"

	"gopkg.in/check.v1"
)

type locateSuite struct{}

var _ = check.Suite(&locateSuite{})

func (s *locateSuite) TestLocate(c *check.C) {
	var stdout bytes.Buffer
	// padding 10: chr1 at [10,26), chrI..._alt at [36,44), chr2 at [54,62)
	exited := (&locate{}).RunCommand("locate", []string{"-padding=10", "-i", "testdata/ref.fasta", "0", "10", "25", "26", "36", "61", "62", "1000"}, nil, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	c.Check(stdout.String(), check.Equals, `0	-	-
10	chr1	1
25	chr1	16
26	-	-
36	chrI_KI270762v1_alt	1
61	chr2	8
62	-	-
1000	-	-
`)
}

func (s *locateSuite) TestUsage(c *check.C) {
	var stderr bytes.Buffer
	exited := (&locate{}).RunCommand("locate", []string{"-i", "testdata/ref.fasta"}, nil, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 2)
	c.Check(stderr.String(), check.Equals, "usage: locate [options] location [location ...]\n")

	stderr.Reset()
	exited = (&locate{}).RunCommand("locate", []string{"-i", "testdata/ref.fasta", "x"}, nil, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 2)
}
