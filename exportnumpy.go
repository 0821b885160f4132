package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/genomeload/refgenome/genome"
	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
)

// baseClasses are the columns of the matrix written by export-numpy.
var baseClasses = []byte{'A', 'C', 'G', 'T', 'n', 'N'}

var baseClassColumn = func() []int {
	r := make([]int, 256)
	for i := range r {
		r[i] = -1
	}
	for col, b := range baseClasses {
		r[int(b)] = col
	}
	return r
}()

// baseCounts returns a len(contigs) x len(baseClasses) matrix of base
// counts, in row-major order.
func baseCounts(g *genome.Genome) []uint64 {
	contigs := g.Contigs()
	out := make([]uint64, len(contigs)*len(baseClasses))
	for row, contig := range contigs {
		for _, b := range g.Sequence(contig) {
			if col := baseClassColumn[int(b)]; col >= 0 {
				out[row*len(baseClasses)+col]++
			}
		}
	}
	return out
}

type exportNumpy struct {
	output io.Writer
	loaderFlags
}

func (cmd *exportNumpy) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	inputFilename := flags.String("i", "-", "input genome or fasta `file`")
	outputFilename := flags.String("o", "", "output `file`")
	namesFilename := flags.String("names", "", "write the contig table (one line per matrix row) to `file`")
	cmd.loaderFlags.register(flags)
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	cmd.output = stdout

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	var g *genome.Genome
	if *inputFilename == "-" {
		g, err = ReadGenome(stdin)
	} else {
		g, err = cmd.loadGenome(*inputFilename)
	}
	if err != nil {
		return 1
	}
	rows, cols := g.NumContigs(), len(baseClasses)
	out := baseCounts(g)
	log.Printf("writing %d x %d matrix, columns %q", rows, cols, baseClasses)

	var output io.WriteCloser
	if *outputFilename == "" {
		output = nopCloser{cmd.output}
	} else {
		output, err = os.OpenFile(*outputFilename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0777)
		if err != nil {
			return 1
		}
		defer output.Close()
	}
	bufw := bufio.NewWriter(output)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return 1
	}
	npw.Shape = []int{rows, cols}
	err = npw.WriteUint64(out)
	if err != nil {
		return 1
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}

	if *namesFilename != "" {
		var f *os.File
		f, err = os.OpenFile(*namesFilename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
		if err != nil {
			return 1
		}
		defer f.Close()
		err = writeContigTable(f, g)
		if err != nil {
			return 1
		}
		err = f.Close()
		if err != nil {
			return 1
		}
	}
	return 0
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
