package genome

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// RemapTable maps alias contig names to canonical names.
type RemapTable map[string]string

// LoadRemapTable reads a remap table. Each line lists a canonical
// name followed by any number of aliases, separated by tabs. Lines
// starting with '#' are comments.
func LoadRemapTable(rdr io.Reader) (RemapTable, error) {
	table := RemapTable{}
	scanner := bufio.NewScanner(rdr)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[0] == '#' {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == '\t' || r == '\r' || r == '\n'
		})
		if len(fields) < 2 {
			continue
		}
		for _, alias := range fields[1:] {
			table[alias] = fields[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Kind: "read", Err: err}
	}
	return table, nil
}

// LoadRemapFile reads a remap table from the named file.
func LoadRemapFile(path string) (RemapTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Kind: "open", Path: path, Err: err}
	}
	defer f.Close()
	table, err := LoadRemapTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "chrmap %s", path)
	}
	return table, nil
}

// Resolve returns the canonical name for name, or name itself if it is
// not an alias.
func (t RemapTable) Resolve(name string) string {
	if canonical, ok := t[name]; ok {
		return canonical
	}
	return name
}
