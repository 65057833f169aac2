package segeval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/confusion"
	"github.com/jamesainslie/go-segeval/metric"
)

// PairResult is the comparison of one coder pair.
type PairResult struct {
	Reference  string
	Hypothesis string
	Score      metric.Score
	// Tally and Edits stay empty for windowed metrics.
	Tally confusion.Tally
	// Edits lists the non-match operations in position order.
	Edits []align.Op
}

// DocumentResult is the score of one document.
type DocumentResult struct {
	ID    string
	Units int
	Pairs []PairResult
	Score metric.Score
}

// Result is the outcome of evaluating a corpus.
type Result struct {
	Metric    Metric
	Documents []DocumentResult
	// Score is the corpus-level score under the configured aggregation.
	Score metric.Score
	// Summary describes the defined pair scores across all documents.
	Summary metric.Summary
	// Undefined counts documents whose score is undefined. Mean
	// aggregation leaves them out.
	Undefined int
}

// Evaluator scores corpora of multi-coder segmentations.
// It is safe for concurrent use.
type Evaluator struct {
	cfg    config
	pool   *align.Pool
	logger *slog.Logger
}

// New creates an Evaluator.
func New(opts ...Option) (*Evaluator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.nearMiss < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNearMiss, cfg.nearMiss)
	}
	if cfg.window < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, cfg.window)
	}
	if _, ok := pairingNames[cfg.pairing]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, cfg.pairing)
	}
	if cfg.aggregation != Mean && cfg.aggregation != Pooled {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, cfg.aggregation)
	}

	return &Evaluator{
		cfg:    cfg,
		pool:   align.NewPool(cfg.workers),
		logger: cfg.logger,
	}, nil
}

// accumulator holds the mergeable counts behind a score.
type accumulator struct {
	tally    confusion.Tally
	presence confusion.Matrix[confusion.Category]
	windows  confusion.Matrix[int]
}

func (a accumulator) merge(o accumulator) accumulator {
	return accumulator{
		tally:    a.tally.Merge(o.tally),
		presence: a.presence.Merge(o.presence),
		windows:  a.windows.Merge(o.windows),
	}
}

type documentPartial struct {
	result DocumentResult
	acc    accumulator
}

type coderPair struct {
	reference  string
	hypothesis string
}

// Evaluate scores every document of corpus with m and combines the document
// results. The whole corpus is validated before any comparison runs.
func (e *Evaluator) Evaluate(ctx context.Context, corpus Corpus, m Metric) (Result, error) {
	if _, ok := metricNames[m]; !ok {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
	if err := e.validate(corpus); err != nil {
		return Result{}, err
	}

	start := time.Now()
	ids := corpus.IDs()
	partials := make([]documentPartial, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.pool.Size())
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ws, err := e.pool.Acquire(gctx)
			if err != nil {
				return err
			}
			defer e.pool.Release(ws)

			p, err := e.evaluateDocument(ws, id, corpus[id], m)
			if err != nil {
				return fmt.Errorf("document %q: %w", id, err)
			}
			partials[i] = p

			e.logger.Debug("document evaluated",
				"document", id,
				"pairs", len(p.result.Pairs),
				"score", p.result.Score.String(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := e.combine(m, partials)
	e.logger.Info("corpus evaluated",
		"metric", m.String(),
		"documents", len(res.Documents),
		"aggregation", e.cfg.aggregation.String(),
		"score", res.Score.String(),
		"elapsed", time.Since(start),
	)
	return res, nil
}

// Close releases pooled workspaces. Evaluate fails after Close.
func (e *Evaluator) Close() error {
	e.pool.Close()
	return nil
}

func (e *Evaluator) validate(corpus Corpus) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	for _, id := range corpus.IDs() {
		doc := corpus[id]
		if err := validateDocument(id, doc); err != nil {
			return err
		}
		if e.cfg.pairing == OneVsRest && e.cfg.reference != "" {
			if _, ok := doc[e.cfg.reference]; !ok {
				return fmt.Errorf("%w: %q not in document %q", ErrUnknownCoder, e.cfg.reference, id)
			}
		}
	}
	return nil
}

// pairs lists the coder pairs compared in doc, in a deterministic order.
func (e *Evaluator) pairs(doc Document) []coderPair {
	coders := doc.Coders()

	var pairs []coderPair
	switch e.cfg.pairing {
	case OneVsRest:
		ref := e.cfg.reference
		if ref == "" {
			ref = coders[0]
		}
		for _, c := range coders {
			if c != ref {
				pairs = append(pairs, coderPair{ref, c})
			}
		}
	case Permuted:
		for _, a := range coders {
			for _, b := range coders {
				if a != b {
					pairs = append(pairs, coderPair{a, b})
				}
			}
		}
	default:
		for i, a := range coders {
			for _, b := range coders[i+1:] {
				pairs = append(pairs, coderPair{a, b})
			}
		}
	}
	return pairs
}

func (e *Evaluator) evaluateDocument(ws *align.Workspace, id string, doc Document, m Metric) (documentPartial, error) {
	pairs := e.pairs(doc)
	results := make([]PairResult, 0, len(pairs))
	scores := make([]metric.Score, 0, len(pairs))

	var acc accumulator
	for _, p := range pairs {
		ref, hyp := doc[p.reference], doc[p.hypothesis]
		pr := PairResult{Reference: p.reference, Hypothesis: p.hypothesis}

		if m.windowed() {
			windows, err := confusion.FromWindows(ref, hyp, e.cfg.window)
			if err != nil {
				return documentPartial{}, err
			}
			acc.windows = acc.windows.Merge(windows)
			pr.Score = e.orient(m, m.windowScore(windows))
		} else {
			al, err := ws.Align(ref, hyp, e.cfg.nearMiss)
			if err != nil {
				return documentPartial{}, fmt.Errorf("comparing %s and %s: %w", p.reference, p.hypothesis, err)
			}
			presence := confusion.FromAlignment(al)
			pr.Tally = confusion.TallyOf(al)
			pr.Edits = slices.DeleteFunc(slices.Clone(al.Ops), func(op align.Op) bool { return op.Kind == align.Match })
			acc.tally = acc.tally.Merge(pr.Tally)
			acc.presence = acc.presence.Merge(presence)
			pr.Score = m.pairScore(al, presence)
		}

		results = append(results, pr)
		scores = append(scores, pr.Score)
	}

	score := meanScore(scores, nil)
	if m == MetricS {
		score = m.pooledScore(acc)
	}

	return documentPartial{
		result: DocumentResult{
			ID:    id,
			Units: doc.Units(),
			Pairs: results,
			Score: score,
		},
		acc: acc,
	}, nil
}

// orient complements error rates when WithOneMinus is set.
func (e *Evaluator) orient(m Metric, s metric.Score) metric.Score {
	if !e.cfg.oneMinus || !m.ErrorRate() {
		return s
	}
	if v, ok := s.Value(); ok {
		return metric.Defined(1 - v)
	}
	return s
}

func (e *Evaluator) combine(m Metric, partials []documentPartial) Result {
	res := Result{
		Metric:    m,
		Documents: make([]DocumentResult, len(partials)),
	}

	var acc accumulator
	var pairScores []metric.Score
	var pairWeights []float64
	scores := make([]metric.Score, len(partials))
	weights := make([]float64, len(partials))
	for i, p := range partials {
		res.Documents[i] = p.result
		scores[i] = p.result.Score
		weights[i] = float64(p.result.Units)
		acc = acc.merge(p.acc)

		if !p.result.Score.IsDefined() {
			res.Undefined++
		}
		for _, pr := range p.result.Pairs {
			pairScores = append(pairScores, pr.Score)
			pairWeights = append(pairWeights, weights[i])
		}
	}
	if !e.cfg.weighted {
		weights, pairWeights = nil, nil
	}

	values, valueWeights := definedValues(pairScores, pairWeights)
	res.Summary = metric.Summarize(values, valueWeights)

	if e.cfg.aggregation == Pooled {
		res.Score = e.orient(m, m.pooledScore(acc))
	} else {
		res.Score = meanScore(scores, weights)
	}
	return res
}

// meanScore averages the defined scores. The mean of no defined scores is
// undefined.
func meanScore(scores []metric.Score, weights []float64) metric.Score {
	values, valueWeights := definedValues(scores, weights)
	if len(values) == 0 {
		return metric.Undefined()
	}
	return metric.Defined(metric.WeightedMean(values, valueWeights))
}

func definedValues(scores []metric.Score, weights []float64) (values, valueWeights []float64) {
	for i, s := range scores {
		v, ok := s.Value()
		if !ok {
			continue
		}
		values = append(values, v)
		if weights != nil {
			valueWeights = append(valueWeights, weights[i])
		}
	}
	return values, valueWeights
}
