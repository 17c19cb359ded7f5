package cmd

import (
	"fmt"
	"time"

	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"

	"readtax/config"
	"readtax/fmindex"
	"readtax/pipeline"
	"readtax/seg"
	"readtax/taxonomy"
)

// checkInputExists exits with a fatal configuration error if path does not
// exist, before any worker starts.
func checkInputExists(flag, path string) {
	ok, err := pathutil.Exists(path)
	checkError(err)
	if !ok {
		checkError(fmt.Errorf("%s: no such file: %s", flag, path))
	}
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify reads against an FM-indexed protein reference",
	Long: `Classify reads against an FM-indexed protein reference.

Attention:
  1. Input may be FASTA or FASTQ, plain or gzip-compressed.
  2. -i/-j/-o accept comma-separated lists for running several file pairs in
     one invocation; when -o is given, it must list as many paths as -i.
  3. -p (protein input) and -j (paired input) are mutually exclusive: a
     6-frame translation of a read pair only makes sense for nucleotide
     reads.
  4. -E/--min-evalue only applies to -a greedy; mem has no alignment score
     to derive an E-value from.
`,
	Run: func(cmd *cobra.Command, args []string) {
		runClassify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("taxonomy", "t", "",
		formatFlagUsage("NCBI-format nodes.dmp taxonomy file (mandatory)."))
	classifyCmd.Flags().StringP("db", "f", "",
		formatFlagUsage("FM-index database file in readtax's own binary format, as written by fmindex.Save (mandatory)."))
	classifyCmd.Flags().StringP("in1", "i", "",
		formatFlagUsage("Input file, or comma-separated list of input files (mandatory)."))
	classifyCmd.Flags().StringP("in2", "j", "",
		formatFlagUsage("Mate-2 input file(s), comma-separated, same count as -i. Forbidden together with -p."))
	classifyCmd.Flags().StringP("out", "o", "",
		formatFlagUsage("Output file, or comma-separated list matching -i in count. Default: stdout."))

	classifyCmd.Flags().StringP("algorithm", "a", "greedy",
		formatFlagUsage(`Alignment strategy: "mem" or "greedy".`))
	classifyCmd.Flags().IntP("mismatches", "e", 3,
		formatFlagUsage("Mismatches allowed per Greedy extension."))
	classifyCmd.Flags().IntP("seed-length", "l", 7,
		formatFlagUsage("Greedy seed length, >= 7."))
	classifyCmd.Flags().IntP("min-fragment-length", "m", 11,
		formatFlagUsage("Minimum translated/protein fragment length considered for searching."))
	classifyCmd.Flags().IntP("min-score", "s", 65,
		formatFlagUsage("Minimum Greedy alignment score to accept a match."))
	classifyCmd.Flags().Float64P("min-evalue", "E", 0,
		formatFlagUsage("E-value threshold: a Greedy match is accepted only when its E-value is <= this value (off by default; forbidden with -a mem)."))

	classifyCmd.Flags().BoolP("seg-enable", "x", true,
		formatFlagUsage("Mask low-complexity fragment regions before searching."))
	classifyCmd.Flags().BoolP("seg-disable", "X", false,
		formatFlagUsage("Disable low-complexity masking (overrides -x)."))

	classifyCmd.Flags().BoolP("protein", "p", false,
		formatFlagUsage("Input is already protein sequence; skip 6-frame translation."))
	classifyCmd.Flags().IntP("threads", "z", 1,
		formatFlagUsage("Number of worker threads."))

	classifyCmd.Flags().BoolP("verbose", "v", false,
		formatFlagUsage("Print progress information."))
	classifyCmd.Flags().BoolP("debug", "d", false,
		formatFlagUsage("Print debug information."))

	classifyCmd.SetUsageTemplate(usageTemplate(""))
}

func runClassify(cmd *cobra.Command) {
	verbose := getFlagBool(cmd, "verbose")
	debug := getFlagBool(cmd, "debug")
	setLogLevel(verbose, debug)

	taxdumpFile := expandHome(getFlagString(cmd, "taxonomy"))
	dbFile := expandHome(getFlagString(cmd, "db"))
	in1Str := getFlagString(cmd, "in1")
	in2Str := getFlagString(cmd, "in2")
	outStr := getFlagString(cmd, "out")

	mode := getFlagString(cmd, "algorithm")
	mismatches := getFlagNonNegativeInt(cmd, "mismatches")
	seedLength := getFlagPositiveInt(cmd, "seed-length")
	minFragmentLength := getFlagPositiveInt(cmd, "min-fragment-length")
	minScore := getFlagPositiveInt(cmd, "min-score")
	minEvalue := getFlagFloat64(cmd, "min-evalue")
	useEvalue := cmd.Flags().Changed("min-evalue")

	segEnable := getFlagBool(cmd, "seg-enable")
	segDisable := getFlagBool(cmd, "seg-disable")
	protein := getFlagBool(cmd, "protein")
	threads := getFlagPositiveInt(cmd, "threads")

	if taxdumpFile == "" {
		checkMandatory(cmd, fmt.Errorf("flag -t/--taxonomy is required"))
	}
	if dbFile == "" {
		checkMandatory(cmd, fmt.Errorf("flag -f/--db is required"))
	}
	if in1Str == "" {
		checkMandatory(cmd, fmt.Errorf("flag -i/--in1 is required"))
	}

	checkInputExists("-t/--taxonomy", taxdumpFile)
	checkInputExists("-f/--db", dbFile)

	if seedLength < 7 {
		checkError(fmt.Errorf("value of flag -l/--seed-length (%d) should be >= 7", seedLength))
	}

	var cfgMode config.Mode
	switch mode {
	case "mem":
		cfgMode = config.MEM
	case "greedy":
		cfgMode = config.Greedy
	default:
		checkError(fmt.Errorf(`value of flag -a/--algorithm must be "mem" or "greedy", got %q`, mode))
	}

	if useEvalue && cfgMode == config.MEM {
		checkError(fmt.Errorf("-E/--min-evalue is not usable with -a mem"))
	}
	if in2Str != "" && protein {
		checkError(fmt.Errorf("-j/--in2 (paired input) cannot be combined with -p/--protein"))
	}

	in1 := splitCommaList(in1Str)
	in2 := splitCommaList(in2Str)
	outs := splitCommaList(outStr)

	if len(in2) > 0 && len(in2) != len(in1) {
		checkError(fmt.Errorf("-j/--in2 lists %d files but -i/--in1 lists %d", len(in2), len(in1)))
	}
	if len(outs) > 0 && len(outs) != len(in1) {
		checkError(fmt.Errorf("-o/--out lists %d files but -i/--in1 lists %d", len(outs), len(in1)))
	}
	for i, input1 := range in1 {
		checkInputExists("-i/--in1", input1)
		if len(in2) > 0 {
			checkInputExists("-j/--in2", in2[i])
		}
	}

	cfg := config.Default()
	cfg.Mode = cfgMode
	cfg.SeedLength = seedLength
	cfg.MinFragmentLength = minFragmentLength
	cfg.MinScore = minScore
	cfg.Mismatches = mismatches
	cfg.UseEvalue = useEvalue
	cfg.MinEvalue = minEvalue
	cfg.InputIsProtein = protein
	cfg.SegEnabled = segEnable && !segDisable
	cfg.NumThreads = threads

	if verbose {
		log.Infof("loading taxonomy: %s", taxdumpFile)
	}
	tax, err := taxonomy.LoadNodesDmp(taxdumpFile)
	checkError(err)

	if verbose {
		log.Infof("loading FM-index: %s", dbFile)
	}
	idx, err := fmindex.Load(dbFile)
	checkError(err)

	timeStart := time.Now()
	for i, input1 := range in1 {
		job := pipeline.Job{
			Input1: input1,
			Warnf: func(format string, args ...interface{}) {
				log.Warningf(format, args...)
			},
		}
		if len(in2) > 0 {
			job.Input2 = in2[i]
		}
		if len(outs) > 0 {
			job.Output = outs[i]
		}

		if verbose {
			log.Infof("classifying: %s", input1)
		}
		checkError(pipeline.Run(cfg, idx, tax, seg.Mask, job))
	}

	if verbose {
		log.Infof("elapsed time: %s", time.Since(timeStart))
	}
}
