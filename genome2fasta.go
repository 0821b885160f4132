package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"

	"github.com/genomeload/refgenome/genome"
	log "github.com/sirupsen/logrus"
)

type genome2fasta struct {
	inputFilename  string
	outputFilename string
	loaderFlags
}

func (cmd *genome2fasta) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cmd.inputFilename, "i", "-", "input genome or fasta `file`")
	flags.StringVar(&cmd.outputFilename, "o", "-", "output fasta `file`")
	prefix := flags.String("prefix", "", "prepend `prefix` to each contig name")
	includePadding := flags.Bool("include-padding", false, "write the padding that follows each contig")
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	cmd.loaderFlags.register(flags)
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	var g *genome.Genome
	if cmd.inputFilename == "-" {
		g, err = ReadGenome(stdin)
	} else {
		g, err = cmd.loadGenome(cmd.inputFilename)
	}
	if err != nil {
		return 1
	}

	var out io.WriteCloser
	if cmd.outputFilename == "-" {
		out = nopCloser{stdout}
	} else {
		out, err = zcreate(cmd.outputFilename)
		if err != nil {
			return 1
		}
		defer out.Close()
	}
	gw := genome.Writer{Prefix: *prefix, IncludePadding: *includePadding}
	err = gw.Write(out, g)
	if err != nil {
		return 1
	}
	err = out.Close()
	if err != nil {
		return 1
	}
	return 0
}
