package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"

	"git.arvados.org/arvados.git/sdk/go/arvados"
	"github.com/genomeload/refgenome/genome"
	log "github.com/sirupsen/logrus"
)

// loaderFlags are the FASTA loading options shared by all commands
// that read FASTA input.
type loaderFlags struct {
	padding       int
	tag           string
	chrmap        string
	terminators   string
	spaceIsTerm   bool
	altSuffix     string
	maxLineLength int
}

func (lf *loaderFlags) register(flags *flag.FlagSet) {
	flags.IntVar(&lf.padding, "padding", genome.DefaultPaddingSize, "insert `N` padding bases before each contig and after the last")
	flags.StringVar(&lf.tag, "tag", "", "take contig names from the value of pipe-delimited `tag` in each header (e.g., \"ref\" for \">gi|1|ref|NC_1.1|\")")
	flags.StringVar(&lf.chrmap, "chrmap", "", "contig name alias `file` (tab-separated: canonical name, then aliases)")
	flags.StringVar(&lf.terminators, "terminators", "", "`characters` that end a contig name in a header line")
	flags.BoolVar(&lf.spaceIsTerm, "space-terminates", true, "end contig names at the first space or tab")
	flags.StringVar(&lf.altSuffix, "alt-suffix", "", "flag contigs whose names end with `suffix` (e.g., \"_alt\") as alternates")
	flags.IntVar(&lf.maxLineLength, "max-line-length", genome.DefaultMaxLineLength, "maximum input line length in `bytes`")
}

func (lf *loaderFlags) loader() (*genome.Loader, error) {
	ldr := &genome.Loader{
		PieceNameTerminators: lf.terminators,
		SpaceIsTerminator:    lf.spaceIsTerm,
		PaddingSize:          lf.padding,
		Tag:                  lf.tag,
		MaxLineLength:        lf.maxLineLength,
		Logger:               log.StandardLogger(),
	}
	if lf.padding < 0 {
		return nil, fmt.Errorf("invalid -padding %d", lf.padding)
	}
	if lf.chrmap != "" {
		remap, err := genome.LoadRemapFile(lf.chrmap)
		if err != nil {
			return nil, err
		}
		log.Printf("loaded %d contig name aliases from %s", len(remap), lf.chrmap)
		ldr.Remap = remap
	}
	if lf.altSuffix != "" {
		ldr.AltMap = genome.NewAltSuffixMap(lf.altSuffix)
	}
	return ldr, nil
}

// loadGenome reads a genome from a FASTA file (possibly gzipped), or
// from a genome archive written by ref2genome.
func (lf *loaderFlags) loadGenome(fnm string) (*genome.Genome, error) {
	if !isFasta(fnm) {
		f, err := zopen(fnm)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		g, err := ReadGenome(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %s", fnm, err)
		}
		return g, nil
	}
	ldr, err := lf.loader()
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(fnm)
	if err != nil {
		return nil, err
	}
	rdr, err := openRewinder(fnm)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	log.Printf("%s load starting (%s)", fnm, ldr)
	var size int64
	if _, isFile := rdr.ReadCloser.(*os.File); isFile {
		size = fi.Size()
	}
	g, err := ldr.Load(rdr, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", fnm, err)
	}
	log.Printf("%s load done: %d contigs, %d bases", fnm, g.NumContigs(), g.CountOfBases())
	if alt, ok := ldr.AltMap.(*genome.AltSuffixMap); ok {
		log.Printf("%s: %d alternate contigs", fnm, alt.Len())
	}
	return g, nil
}

type ref2genome struct {
	refFile        string
	projectUUID    string
	outputFilename string
	contigTable    bool
	runLocal       bool
	loaderFlags
}

func (cmd *ref2genome) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cmd.refFile, "ref", "", "reference fasta `file`")
	flags.StringVar(&cmd.projectUUID, "project", "", "project `UUID` for containers and output data")
	flags.StringVar(&cmd.outputFilename, "o", "", "output genome `file` (default: stdout)")
	flags.BoolVar(&cmd.contigTable, "contigs", false, "write a contig table (name, length, location, alt) instead of a genome file")
	flags.BoolVar(&cmd.runLocal, "local", false, "run on local host (default: run in an arvados container)")
	cmd.loaderFlags.register(flags)
	priority := flags.Int("priority", 500, "container request priority")
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	loglevel := flags.String("loglevel", "info", "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if cmd.refFile == "" {
		err = errors.New("reference data (-ref) not specified")
		return 2
	}

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	lvl, err := log.ParseLevel(*loglevel)
	if err != nil {
		return 2
	}
	log.SetLevel(lvl)

	if !cmd.runLocal {
		if cmd.outputFilename != "" {
			err = errors.New("cannot specify output filename in non-local mode")
			return 2
		}
		runner := arvadosContainerRunner{
			Name:        "refgenome ref2genome",
			Client:      arvados.NewClientFromEnv(),
			ProjectUUID: cmd.projectUUID,
			RAM:         1 << 30,
			Priority:    *priority,
			VCPUs:       1,
		}
		if fi, err := os.Stat(cmd.refFile); err == nil {
			runner.RAM += fi.Size() * 4
		}
		err = runner.TranslatePaths(&cmd.refFile, &cmd.chrmap)
		if err != nil {
			return 1
		}
		runner.Args = cmd.containerArgs(*loglevel)
		var output string
		output, err = runner.Run()
		if err != nil {
			return 1
		}
		fmt.Fprintln(stdout, output+"/ref.genome")
		return 0
	}

	var out io.WriteCloser
	if cmd.outputFilename == "" {
		out = nopCloser{stdout}
	} else {
		out, err = zcreate(cmd.outputFilename)
		if err != nil {
			return 1
		}
		defer out.Close()
	}
	g, err := cmd.loadGenome(cmd.refFile)
	if err != nil {
		return 1
	}
	if cmd.contigTable {
		err = writeContigTable(out, g)
	} else {
		err = WriteGenome(out, g)
	}
	if err != nil {
		return 1
	}
	if err = out.Close(); err != nil {
		return 1
	}
	return 0
}

// containerArgs returns the command line for running this ref2genome
// invocation locally in a container, with paths already translated.
func (cmd *ref2genome) containerArgs(loglevel string) []string {
	return []string{"ref2genome", "-local=true",
		"-loglevel=" + loglevel,
		fmt.Sprintf("-padding=%d", cmd.padding),
		fmt.Sprintf("-space-terminates=%v", cmd.spaceIsTerm),
		fmt.Sprintf("-max-line-length=%d", cmd.maxLineLength),
		fmt.Sprintf("-contigs=%v", cmd.contigTable),
		"-tag=" + cmd.tag,
		"-chrmap=" + cmd.chrmap,
		"-terminators=" + cmd.terminators,
		"-alt-suffix=" + cmd.altSuffix,
		"-ref", cmd.refFile,
		"-o", "/mnt/output/ref.genome",
	}
}

func writeContigTable(w io.Writer, g *genome.Genome) error {
	bufw := bufio.NewWriter(w)
	for _, contig := range g.Contigs() {
		fmt.Fprintf(bufw, "%s\t%d\t%d\t%v\n", contig.Name, contig.Length, contig.BeginningLocation, contig.IsAlternate)
	}
	return bufw.Flush()
}
