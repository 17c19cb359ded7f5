package pipeline

import (
	"io"
	"sync"

	"github.com/pkg/errors"

	"readtax/config"
	"readtax/fastxio"
	"readtax/fmindex"
	"readtax/read"
	"readtax/taxonomy"
)

// Job describes one input file pair (or single file) to classify into one
// output stream.
type Job struct {
	Input1 string
	Input2 string // empty when unpaired
	Output string // empty writes to stdout

	// Warnf receives soft-stream warnings (e.g. file2 outliving file1).
	Warnf func(format string, args ...interface{})
}

// Run executes one Job end to end: it opens the input(s) and output, starts
// a single producer and cfg.NumThreads workers, and blocks until the
// producer has finished and every worker has drained the queue. It returns
// the first fatal error encountered, if any, but still flushes whatever
// output was already written.
func Run(cfg *config.Config, idx fmindex.Index, tax *taxonomy.Taxonomy, mask func(string) string, job Job) error {
	out, err := fastxio.NewOutputWriter(job.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	q := NewQueue(DefaultCapacity)

	var wg sync.WaitGroup
	errs := make(chan error, cfg.NumThreads+1)

	numWorkers := cfg.NumThreads
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		w := newWorker(cfg, idx, tax, mask, out)
		wg.Add(1)
		go w.run(q, &wg, errs)
	}

	producerErr := produce(job, q, errs)

	wg.Wait()
	close(errs)

	if producerErr != nil {
		return producerErr
	}
	for e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// produce reads job's input(s), pushing one *read.Item per read onto q,
// then closes q exactly once. A fatal parsing error closes the queue early
// so workers can drain and exit.
func produce(job Job, q *Queue, errs chan<- error) error {
	defer q.Close()

	if job.Input2 == "" {
		return produceSingle(job, q)
	}
	return producePaired(job, q)
}

func produceSingle(job Job, q *Queue) error {
	r, err := fastxio.NewReader(job.Input1)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		name, seq, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "pipeline: fatal stream error")
		}
		q.Push(&read.Item{Name: name, Seq1: seq})
	}
}

func producePaired(job Job, q *Queue) error {
	pr, err := fastxio.NewPairedReader(job.Input1, job.Input2)
	if err != nil {
		return err
	}
	defer pr.Close()
	pr.Warnf = job.Warnf

	for {
		item, err := pr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "pipeline: fatal stream error")
		}
		q.Push(item)
	}
}
