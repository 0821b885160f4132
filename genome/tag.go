package genome

import (
	"fmt"
	"strings"
)

// FindTagValue looks for a pipe-delimited tag in a FASTA header line,
// like "ref" in ">gi|123|ref|NC_000001.11|description", and returns
// the following field ("NC_000001.11").
//
// The tag must be preceded by '>' or '|' and followed by '|'. If no
// such occurrence exists, found is false. An occurrence whose value
// has no closing '|' is a *FormatError.
func FindTagValue(header, tag string) (value string, found bool, err error) {
	if tag == "" {
		return "", false, nil
	}
	for from := 1; from < len(header); {
		i := strings.Index(header[from:], tag)
		if i < 0 {
			return "", false, nil
		}
		start := from + i
		end := start + len(tag)
		if (header[start-1] == '>' || header[start-1] == '|') && end < len(header) && header[end] == '|' {
			rest := header[end+1:]
			j := strings.IndexByte(rest, '|')
			if j < 0 {
				return "", true, &FormatError{Msg: fmt.Sprintf("badly formatted tag %q in contig %q", header[start:], header[1:])}
			}
			return rest[:j], true, nil
		}
		from = start + 1
	}
	return "", false, nil
}
