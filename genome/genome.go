// Package genome loads multi-record FASTA files into a single padded,
// contiguous in-memory genome, and writes such genomes back out as
// FASTA.
//
// Each contig is preceded by a block of padding bases ('n'), and one
// more padding block follows the last contig, so that no substring of
// the concatenated buffer spans two contigs without crossing at least
// PaddingSize 'n' bases.
package genome

import (
	"sort"
)

// Contig is one named record of a loaded genome.
type Contig struct {
	Name string
	// Offset of the first base in the concatenated buffer.
	BeginningLocation int64
	// Number of bases, excluding padding. Zero until
	// FillInContigLengths is called.
	Length      int64
	IsAlternate bool
}

// ContigSource is the read side of a genome: everything WriteFASTA
// needs.
type ContigSource interface {
	// Contigs returns the contig table in file order.
	Contigs() []Contig
	NumContigs() int
	// Substring returns length bases starting at location, or nil if
	// the range is out of bounds.
	Substring(location, length int64) []byte
	CountOfBases() int64
	Padding() int
}

// Sink receives the output of a Loader.
//
// AppendData must copy its argument: the loader reuses the buffer
// for subsequent lines.
type Sink interface {
	ContigSource
	AppendData(data []byte)
	StartContig(name string, alt AltContigMap)
	FillInContigLengths()
	AdjustAltContigs(alt AltContigMap)
	SortContigsByName()
}

// Genome is an in-memory Sink.
type Genome struct {
	bases   []byte
	contigs []Contig
	byName  []int // indexes into contigs, sorted by name
	padding int
}

// New returns an empty genome with room for maxBases bases and
// maxContigs contigs. Both are capacity hints, not limits.
func New(maxBases int64, padding, maxContigs int) *Genome {
	return &Genome{
		bases:   make([]byte, 0, maxBases),
		contigs: make([]Contig, 0, maxContigs),
		padding: padding,
	}
}

// Restore returns a finalized genome built from previously loaded
// bases and contigs (e.g., read from an archive). The slices are not
// copied.
func Restore(bases []byte, contigs []Contig, padding int) *Genome {
	g := &Genome{bases: bases, contigs: contigs, padding: padding}
	g.SortContigsByName()
	return g
}

func (g *Genome) AppendData(data []byte) {
	g.bases = append(g.bases, data...)
}

// StartContig records a new contig beginning at the current end of
// the base buffer. Alternate status is decided later, by
// AdjustAltContigs.
func (g *Genome) StartContig(name string, alt AltContigMap) {
	g.contigs = append(g.contigs, Contig{
		Name:              name,
		BeginningLocation: int64(len(g.bases)),
	})
	g.byName = nil
}

func (g *Genome) FillInContigLengths() {
	for i := range g.contigs {
		end := int64(len(g.bases))
		if i+1 < len(g.contigs) {
			end = g.contigs[i+1].BeginningLocation
		}
		g.contigs[i].Length = end - g.contigs[i].BeginningLocation - int64(g.padding)
		if g.contigs[i].Length < 0 {
			g.contigs[i].Length = 0
		}
	}
}

// AdjustAltContigs sets IsAlternate on each contig, if alt is able to
// classify contigs (see AltClassifier).
func (g *Genome) AdjustAltContigs(alt AltContigMap) {
	classifier, ok := alt.(AltClassifier)
	if !ok {
		return
	}
	for i := range g.contigs {
		g.contigs[i].IsAlternate = classifier.IsAlternate(g.contigs[i].Name)
	}
}

// SortContigsByName builds the name index used by ContigByName. The
// file-order contig table returned by Contigs is not reordered.
func (g *Genome) SortContigsByName() {
	g.byName = make([]int, len(g.contigs))
	for i := range g.byName {
		g.byName[i] = i
	}
	sort.SliceStable(g.byName, func(i, j int) bool {
		return g.contigs[g.byName[i]].Name < g.contigs[g.byName[j]].Name
	})
}

func (g *Genome) NumContigs() int { return len(g.contigs) }

func (g *Genome) Contigs() []Contig { return g.contigs }

func (g *Genome) CountOfBases() int64 { return int64(len(g.bases)) }

func (g *Genome) Padding() int { return g.padding }

// Bases returns the whole concatenated buffer, padding included.
func (g *Genome) Bases() []byte { return g.bases }

func (g *Genome) Substring(location, length int64) []byte {
	if location < 0 || length < 0 || location+length > int64(len(g.bases)) {
		return nil
	}
	return g.bases[location : location+length]
}

// Sequence returns the bases of the given contig, without padding.
func (g *Genome) Sequence(c Contig) []byte {
	return g.Substring(c.BeginningLocation, c.Length)
}

// ContigByName returns the contig with the given name. If more than
// one contig has that name, the first one in file order is returned.
func (g *Genome) ContigByName(name string) (Contig, bool) {
	if g.byName == nil {
		g.SortContigsByName()
	}
	i := sort.Search(len(g.byName), func(i int) bool {
		return g.contigs[g.byName[i]].Name >= name
	})
	if i < len(g.byName) && g.contigs[g.byName[i]].Name == name {
		return g.contigs[g.byName[i]], true
	}
	return Contig{}, false
}

// ContigAtLocation returns the contig whose span (including the
// padding that follows it) contains location. Locations in the
// leading padding block belong to no contig.
func (g *Genome) ContigAtLocation(location int64) (Contig, bool) {
	if location < 0 || location >= int64(len(g.bases)) {
		return Contig{}, false
	}
	i := sort.Search(len(g.contigs), func(i int) bool {
		return g.contigs[i].BeginningLocation > location
	})
	if i == 0 {
		return Contig{}, false
	}
	return g.contigs[i-1], true
}
