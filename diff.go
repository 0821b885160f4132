package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/genomeload/refgenome/genome"
	"github.com/genomeload/refgenome/hgvs"
	log "github.com/sirupsen/logrus"
)

type diffFasta struct {
	loaderFlags
}

func (cmd *diffFasta) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	sequence := flags.String("sequence", "", "compare only the contig named `name`")
	offset := flags.Int("offset", 0, "coordinate offset")
	vcfStyle := flags.Bool("pad-left", false, "include the preceding base in ref and alt when either would be empty, as in VCF")
	timeout := flags.Duration("timeout", 0, "timeout per contig (examples: \"1s\", \"1ms\")")
	cmd.loaderFlags.register(flags)
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	if len(flags.Args()) != 2 {
		err = fmt.Errorf("usage: %s [options] a.fasta b.fasta", prog)
		return 2
	}

	var genomes [2]*genome.Genome
	errs := make(chan error, 2)
	for idx, fnm := range flags.Args() {
		idx, fnm := idx, fnm
		go func() {
			g, err := cmd.loadGenome(fnm)
			genomes[idx] = g
			errs <- err
		}()
	}
	for range flags.Args() {
		if e := <-errs; e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return 1
	}

	a, b := genomes[0], genomes[1]
	bufw := bufio.NewWriter(stdout)
	for _, acontig := range a.Contigs() {
		if *sequence != "" && acontig.Name != *sequence {
			continue
		}
		bcontig, ok := b.ContigByName(acontig.Name)
		if !ok {
			log.Warnf("contig %q not found in %s", acontig.Name, flags.Arg(1))
			continue
		}
		variants, timedOut := hgvs.Diff(string(a.Sequence(acontig)), string(b.Sequence(bcontig)), *timeout)
		if timedOut {
			log.Warnf("contig %q: diff timed out, output may not be minimal", acontig.Name)
		}
		for _, v := range variants {
			v.Position += *offset
			pos, ref, alt := v.Position, v.Ref, v.New
			if *vcfStyle {
				padded := v.PadLeft()
				pos, ref, alt = padded.Position, padded.Ref, padded.New
			}
			fmt.Fprintf(bufw, "%s:g.%s\t%s\t%d\t%s\t%s\n", acontig.Name, v.String(), acontig.Name, pos, ref, alt)
		}
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	return 0
}
