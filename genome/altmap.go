package genome

import (
	"strings"
)

// AltContigMap is notified of every FASTA header during a load, along
// with the contig name it resolved to.
type AltContigMap interface {
	AddFastaContig(header, name string)
}

// AltClassifier is implemented by alt maps that can report which
// contigs are alternates.
type AltClassifier interface {
	IsAlternate(name string) bool
}

// AltSuffixMap flags a contig as alternate if its name ends with one
// of Suffixes, or its header line contains one of HeaderMarkers.
type AltSuffixMap struct {
	Suffixes      []string
	HeaderMarkers []string

	alt     map[string]bool
	headers int
}

// NewAltSuffixMap returns an AltSuffixMap that recognizes GRCh38-style
// alt contig names ("chr1_KI270762v1_alt") and NCBI "alt-scaffold"
// headers.
func NewAltSuffixMap(suffixes ...string) *AltSuffixMap {
	if len(suffixes) == 0 {
		suffixes = []string{"_alt"}
	}
	return &AltSuffixMap{
		Suffixes:      suffixes,
		HeaderMarkers: []string{"alt-scaffold", "alt_scaffold"},
	}
}

func (m *AltSuffixMap) AddFastaContig(header, name string) {
	if m.alt == nil {
		m.alt = map[string]bool{}
	}
	m.headers++
	for _, sfx := range m.Suffixes {
		if sfx != "" && strings.HasSuffix(name, sfx) {
			m.alt[name] = true
			return
		}
	}
	for _, marker := range m.HeaderMarkers {
		if marker != "" && strings.Contains(header, marker) {
			m.alt[name] = true
			return
		}
	}
}

func (m *AltSuffixMap) IsAlternate(name string) bool {
	return m.alt[name]
}

// Len returns the number of distinct alternate contig names seen.
func (m *AltSuffixMap) Len() int { return len(m.alt) }

// Headers returns the number of headers seen.
func (m *AltSuffixMap) Headers() int { return m.headers }
