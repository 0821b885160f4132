package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/genomeload/refgenome/genome"
)

// locate maps 0-based locations in a loaded genome back to contig
// coordinates.
type locate struct {
	loaderFlags
}

func (cmd *locate) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inputFilename := flags.String("i", "-", "input genome or fasta `file`")
	cmd.loaderFlags.register(flags)
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() == 0 {
		err = fmt.Errorf("usage: %s [options] location [location ...]", prog)
		return 2
	}
	locations := make([]int64, flags.NArg())
	for i, arg := range flags.Args() {
		locations[i], err = strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return 2
		}
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

	// location, contig, offset in contig (1-based); "-" for padding
	bufw := bufio.NewWriter(stdout)
	for _, loc := range locations {
		contig, ok := g.ContigAtLocation(loc)
		if !ok || loc-contig.BeginningLocation >= contig.Length {
			fmt.Fprintf(bufw, "%d\t-\t-\n", loc)
			continue
		}
		fmt.Fprintf(bufw, "%d\t%s\t%d\n", loc, contig.Name, loc-contig.BeginningLocation+1)
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	return 0
}
