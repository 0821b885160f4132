package genome

import (
	"gopkg.in/check.v1"
)

type tagSuite struct{}

var _ = check.Suite(&tagSuite{})

func (s *tagSuite) TestFindTagValue(c *check.C) {
	for _, trial := range []struct {
		header string
		tag    string
		value  string
		found  bool
		err    bool
	}{
		{">gi|123|ref|XYZ.1|", "ref", "XYZ.1", true, false},
		{">gi|123|ref|XYZ.1|", "gi", "123", true, false},
		{">gi|123|ref|XYZ.1|", "123", "ref", true, false},
		{">gi|123|ref|XYZ.1|", "nope", "", false, false},
		{">gi|123|ref|XYZ.1|", "ef", "", false, false},
		{">gi|123|pref|A|ref|B|", "ref", "B", true, false},
		{">gi|123|ref|XYZ.1", "ref", "", true, true},
		{">gi|123|ref", "ref", "", false, false},
		{">chr1 description", "ref", "", false, false},
		{">gi|123|", "", "", false, false},
	} {
		comment := check.Commentf("%q %q", trial.header, trial.tag)
		value, found, err := FindTagValue(trial.header, trial.tag)
		c.Check(value, check.Equals, trial.value, comment)
		c.Check(found, check.Equals, trial.found, comment)
		if trial.err {
			c.Check(err, check.FitsTypeOf, &FormatError{}, comment)
		} else {
			c.Check(err, check.IsNil, comment)
		}
	}
}
