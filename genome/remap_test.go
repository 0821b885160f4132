package genome

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"

	"gopkg.in/check.v1"
)

type remapSuite struct{}

var _ = check.Suite(&remapSuite{})

func (s *remapSuite) TestLoadRemapTable(c *check.C) {
	table, err := LoadRemapTable(bytes.NewBufferString("# canonical\taliases\nchr1\tchrI\t1\r\nchr2\tchrII\n\nchrM\n"))
	c.Assert(err, check.IsNil)
	c.Check(table, check.DeepEquals, RemapTable{
		"chrI":  "chr1",
		"1":     "chr1",
		"chrII": "chr2",
	})
	c.Check(table.Resolve("chrI"), check.Equals, "chr1")
	c.Check(table.Resolve("chr5"), check.Equals, "chr5")
}

func (s *remapSuite) TestLoadRemapFile(c *check.C) {
	tmpdir := c.MkDir()
	fnm := filepath.Join(tmpdir, "chrmap.tsv")
	err := ioutil.WriteFile(fnm, []byte("chr1\tchrI\n"), 0644)
	c.Assert(err, check.IsNil)
	table, err := LoadRemapFile(fnm)
	c.Assert(err, check.IsNil)
	c.Check(table["chrI"], check.Equals, "chr1")

	_, err = LoadRemapFile(filepath.Join(tmpdir, "missing.tsv"))
	c.Assert(err, check.FitsTypeOf, &IOError{})
	c.Check(err.(*IOError).Kind, check.Equals, "open")
	c.Check(os.IsNotExist(err.(*IOError).Err), check.Equals, true)
}
