package main

import (
	"bytes"
	"io/ioutil"
	"os"

	"github.com/kshedden/gonpy"
	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestBaseCounts(c *check.C) {
	tmpdir := c.MkDir()
	var output bytes.Buffer
	exited := (&exportNumpy{}).RunCommand("export-numpy", []string{"-i", "testdata/ref.fasta", "-names", tmpdir + "/names.tsv"}, nil, &output, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	npy, err := gonpy.NewReader(&output)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{3, 6})
	counts, err := npy.GetUint64()
	c.Assert(err, check.IsNil)
	c.Check(counts, check.DeepEquals, []uint64{
		4, 4, 3, 3, 2, 0,
		0, 4, 4, 0, 0, 0,
		2, 0, 0, 4, 0, 2,
	})
	names, err := ioutil.ReadFile(tmpdir + "/names.tsv")
	c.Assert(err, check.IsNil)
	c.Check(string(names), check.Equals, "chr1\t16\t500\tfalse\nchrI_KI270762v1_alt\t8\t1016\tfalse\nchr2\t8\t1524\tfalse\n")
}
