package pipeline

import (
	"sync"

	"github.com/shenwei356/go-logging"

	"readtax/classify"
	"readtax/config"
	"readtax/fastxio"
	"readtax/fmindex"
	"readtax/read"
	"readtax/score"
	"readtax/search"
	"readtax/taxonomy"
	"readtax/translate"
)

var log = logging.MustGetLogger("readtax")

// newSearcher builds the strategy selected by cfg.Mode once per worker, so
// a read never re-decides which algorithm to run.
func newSearcher(cfg *config.Config, idx fmindex.Index) search.Searcher {
	if cfg.Mode == config.MEM {
		return &search.MEMSearcher{
			Index:             idx,
			MinFragmentLength: cfg.MinFragmentLength,
		}
	}
	return &search.GreedySearcher{
		Index:      idx,
		SeedLength: cfg.SeedLength,
		Mismatches: cfg.Mismatches,
		MinScore:   cfg.MinScore,
		Scorer:     score.BLOSUM62,
		UseEvalue:  cfg.UseEvalue,
		MinEvalue:  cfg.MinEvalue,
	}
}

// worker owns everything per-thread: its searcher, its fragment/match
// scratch slices (reused across reads; they never escape the worker), and
// the shared collaborators it reads from.
type worker struct {
	cfg      *config.Config
	tax      *taxonomy.Taxonomy
	mask     func(string) string
	searcher search.Searcher
	out      *fastxio.OutputWriter

	fragBuf  []string
	matchBuf []search.Match
}

func newWorker(cfg *config.Config, idx fmindex.Index, tax *taxonomy.Taxonomy, mask func(string) string, out *fastxio.OutputWriter) *worker {
	return &worker{
		cfg:      cfg,
		tax:      tax,
		mask:     mask,
		searcher: newSearcher(cfg, idx),
		out:      out,
	}
}

// run drains q until it reports closed-and-drained, classifying and
// writing one output line per item. Output write errors are reported on
// errs (dropped once errs is full) rather than killing the worker.
// A panic while processing one item is recovered and logged with the
// read's name; the worker keeps draining the queue rather than taking the
// remaining items down with it.
func (w *worker) run(q *Queue, wg *sync.WaitGroup, errs chan<- error) {
	defer wg.Done()
	for {
		v, ok := q.Pop()
		if !ok {
			return
		}
		item := v.(*read.Item)
		w.processItem(item, errs)
	}
}

func (w *worker) processItem(item *read.Item, errs chan<- error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("read %s: recovered from panic: %v", item.Name, r)
		}
	}()

	line := w.classifyRead(item)
	if err := w.out.WriteLine(line); err != nil {
		select {
		case errs <- err:
		default:
		}
	}
}

func (w *worker) classifyRead(item *read.Item) string {
	w.fragBuf = w.fragBuf[:0]
	w.matchBuf = w.matchBuf[:0]

	w.collectFragmentsAndMatches(item.Seq1)
	if item.Paired() {
		w.collectFragmentsAndMatches(item.Seq2)
	}

	result := classify.Classify(w.cfg, w.tax, w.matchBuf)
	return classify.FormatLine(item.Name, result, w.fragBuf)
}

func (w *worker) collectFragmentsAndMatches(seq string) {
	if seq == "" {
		return
	}
	frags := translate.Fragments(seq, w.cfg.InputIsProtein, w.cfg.MinFragmentLength)
	if len(frags) == 0 {
		return
	}

	seqs := make([]string, len(frags))
	for i, f := range frags {
		s := f.Seq
		if w.cfg.SegEnabled {
			s = w.mask(s)
		}
		seqs[i] = s
	}
	w.fragBuf = append(w.fragBuf, seqs...)
	w.matchBuf = append(w.matchBuf, w.searcher.Search(seqs)...)
}
