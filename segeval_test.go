package segeval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/boundary"
)

const epsilon = 1e-9

func seg(masses ...int) boundary.Segmentation {
	return boundary.MustNew(masses...)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// evaluate runs one evaluation and fails the test on error.
func evaluate(t *testing.T, corpus Corpus, m Metric, opts ...Option) Result {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = e.Close() }()

	res, err := e.Evaluate(context.Background(), corpus, m)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	return res
}

func score(t *testing.T, res Result) float64 {
	t.Helper()
	v, err := res.Score.Float()
	if err != nil {
		t.Fatalf("Score.Float() failed: %v", err)
	}
	return v
}

func TestBoundarySimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     boundary.Segmentation
		nearMiss int
		want     float64
	}{
		{"identical", seg(2, 3, 5), seg(2, 3, 5), 0, 1},
		{"hypothesis without boundaries", seg(2, 3, 5), seg(10), 0, 0},
		{"near miss", seg(4, 6), seg(5, 5), 1, 0.75},
		{"near miss outside window", seg(4, 6), seg(5, 5), 0, 0},
		{"no boundaries", seg(10), seg(10), 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoundarySimilarity(tt.a, tt.b, tt.nearMiss)
			if err != nil {
				t.Fatalf("BoundarySimilarity() error: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("BoundarySimilarity() = %v, want %v", got, tt.want)
			}

			rev, err := BoundarySimilarity(tt.b, tt.a, tt.nearMiss)
			if err != nil {
				t.Fatalf("BoundarySimilarity() reversed error: %v", err)
			}
			if !approx(got, rev) {
				t.Errorf("BoundarySimilarity() not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestBoundarySimilarity_Identity(t *testing.T) {
	for _, masses := range [][]int{{1}, {10}, {1, 1, 1}, {3, 7, 2, 8}} {
		s := seg(masses...)
		for n := range 4 {
			got, err := BoundarySimilarity(s, s, n)
			if err != nil {
				t.Fatalf("BoundarySimilarity(%v, %v, %d) error: %v", s, s, n, err)
			}
			if got != 1 {
				t.Errorf("BoundarySimilarity(%v, %v, %d) = %v, want 1", s, s, n, got)
			}
		}
	}
}

func TestBoundarySimilarity_WideWindow(t *testing.T) {
	pairs := [][2]boundary.Segmentation{
		{seg(2, 3, 5), seg(10)},
		{seg(4, 6), seg(5, 5)},
		{seg(2, 3, 5), seg(3, 3, 4)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		want, err := BoundarySimilarity(a, b, a.Total())
		if err != nil {
			t.Fatalf("BoundarySimilarity() error: %v", err)
		}

		got, err := BoundarySimilarity(a, b, math.MaxInt)
		if err != nil {
			t.Fatalf("BoundarySimilarity() error: %v", err)
		}
		if got < 0 || got > 1 {
			t.Errorf("BoundarySimilarity(%v, %v, MaxInt) = %v, want in [0, 1]", a, b, got)
		}
		if got != want {
			t.Errorf("BoundarySimilarity(%v, %v, MaxInt) = %v, want %v", a, b, got, want)
		}
	}
}

func TestBoundarySimilarity_Incomparable(t *testing.T) {
	_, err := BoundarySimilarity(seg(2, 3), seg(4), 0)
	if !errors.Is(err, ErrIncomparableSegmentations) {
		t.Errorf("expected ErrIncomparableSegmentations, got: %v", err)
	}
}

func TestCompareBoundaries(t *testing.T) {
	al, err := CompareBoundaries(seg(2, 3, 5), seg(2, 3, 5), 0)
	if err != nil {
		t.Fatalf("CompareBoundaries() error: %v", err)
	}
	if got := len(al.Ops) - al.Count(align.Match); got != 0 {
		t.Errorf("non-match operations = %d, want 0", got)
	}
	if al.Cost() != 0 {
		t.Errorf("Cost() = %v, want 0", al.Cost())
	}
}

func TestSegmentationSimilarity(t *testing.T) {
	doc := Document{
		"a": seg(2, 3, 5),
		"b": seg(2, 3, 5),
		"c": seg(10),
	}

	// Pair costs 0, 2, 2 over 4, 2, 2 boundaries
	got, err := SegmentationSimilarity(doc, 0)
	if err != nil {
		t.Fatalf("SegmentationSimilarity() error: %v", err)
	}
	if !approx(got, 0.5) {
		t.Errorf("SegmentationSimilarity() = %v, want 0.5", got)
	}

	_, err = SegmentationSimilarity(Document{"a": seg(10)}, 0)
	if !errors.Is(err, ErrInsufficientCoders) {
		t.Errorf("expected ErrInsufficientCoders, got: %v", err)
	}
}

func TestWindowedDifference(t *testing.T) {
	ref := seg(4, 4, 5)

	tests := []struct {
		name   string
		hyp    boundary.Segmentation
		wantWD float64
		wantPk float64
	}{
		{"close", seg(5, 3, 5), 2.0 / 11.0, 2.0 / 11.0},
		{"no boundaries", seg(13), 4.0 / 11.0, 4.0 / 11.0},
		{"identical", ref, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd, err := WindowedDifference(ref, tt.hyp, 0)
			if err != nil {
				t.Fatalf("WindowedDifference() error: %v", err)
			}
			if !approx(wd, tt.wantWD) {
				t.Errorf("WindowedDifference() = %v, want %v", wd, tt.wantWD)
			}

			pk, err := Pk(ref, tt.hyp, 0)
			if err != nil {
				t.Fatalf("Pk() error: %v", err)
			}
			if !approx(pk, tt.wantPk) {
				t.Errorf("Pk() = %v, want %v", pk, tt.wantPk)
			}
		})
	}

	if _, err := WindowedDifference(ref, seg(5), 0); !errors.Is(err, ErrIncomparableSegmentations) {
		t.Errorf("expected ErrIncomparableSegmentations, got: %v", err)
	}
	if _, err := Pk(ref, ref, -1); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got: %v", err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"negative near miss", WithNearMiss(-1), ErrInvalidNearMiss},
		{"negative window", WithWindow(-3), ErrInvalidWindow},
		{"unknown pairing", WithPairing(Pairing(42)), ErrUnknownMetric},
		{"unknown aggregation", WithAggregation(Aggregation(7)), ErrUnknownMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		corpus Corpus
		opts   []Option
		want   error
	}{
		{
			name:   "empty corpus",
			corpus: Corpus{},
			want:   ErrEmptyCorpus,
		},
		{
			name: "single coder",
			corpus: Corpus{
				"ok":   {"a": seg(5, 5), "b": seg(10)},
				"solo": {"a": seg(10)},
			},
			want: ErrInsufficientCoders,
		},
		{
			name:   "different lengths",
			corpus: Corpus{"d": {"a": seg(5, 5), "b": seg(9)}},
			want:   ErrIncomparableSegmentations,
		},
		{
			name:   "uninitialised segmentation",
			corpus: Corpus{"d": {"a": seg(5, 5), "b": boundary.Segmentation{}}},
			want:   ErrMalformedSegmentation,
		},
		{
			name:   "missing reference",
			corpus: Corpus{"d": {"a": seg(5, 5), "b": seg(10)}},
			opts:   []Option{WithPairing(OneVsRest), WithReference("gold")},
			want:   ErrUnknownCoder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.opts...)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			defer func() { _ = e.Close() }()

			_, err = e.Evaluate(context.Background(), tt.corpus, MetricB)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestEvaluate_UnknownMetric(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = e.Close() }()

	corpus := Corpus{"d": {"a": seg(5, 5), "b": seg(10)}}
	if _, err := e.Evaluate(context.Background(), corpus, Metric(99)); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got: %v", err)
	}
}

func testCorpus() Corpus {
	return Corpus{
		"same":   {"a": seg(2, 3, 5), "b": seg(2, 3, 5)},
		"missed": {"a": seg(10, 10), "b": seg(20)},
	}
}

func TestEvaluate_Aggregation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want float64
	}{
		{"mean", nil, 0.5},
		// Document lengths 10 and 20
		{"length weighted", []Option{WithLengthWeighting(true)}, 1.0 / 3.0},
		// One unmatched boundary out of five
		{"pooled", []Option{WithAggregation(Pooled)}, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithNearMiss(0)}, tt.opts...)
			res := evaluate(t, testCorpus(), MetricB, opts...)

			if got := score(t, res); !approx(got, tt.want) {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
			if len(res.Documents) != 2 {
				t.Fatalf("len(Documents) = %d, want 2", len(res.Documents))
			}
			if res.Documents[0].ID != "missed" || res.Documents[1].ID != "same" {
				t.Errorf("Documents not sorted by id: %v, %v", res.Documents[0].ID, res.Documents[1].ID)
			}
			if res.Summary.N != 2 {
				t.Errorf("Summary.N = %d, want 2", res.Summary.N)
			}
		})
	}
}

func TestEvaluate_Pairing(t *testing.T) {
	corpus := Corpus{"d": {
		"gold": seg(2, 3, 5),
		"x":    seg(2, 3, 5),
		"y":    seg(10),
	}}

	tests := []struct {
		name      string
		opts      []Option
		wantPairs int
		want      float64
	}{
		{"all pairs", nil, 3, 1.0 / 3.0},
		{"one vs rest", []Option{WithPairing(OneVsRest), WithReference("gold")}, 2, 0.5},
		{"one vs rest default reference", []Option{WithPairing(OneVsRest)}, 2, 0.5},
		{"permuted", []Option{WithPairing(Permuted)}, 6, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithNearMiss(0)}, tt.opts...)
			res := evaluate(t, corpus, MetricB, opts...)

			if got := len(res.Documents[0].Pairs); got != tt.wantPairs {
				t.Errorf("Pairs = %d, want %d", got, tt.wantPairs)
			}
			if got := score(t, res); !approx(got, tt.want) {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_PermutedPairs(t *testing.T) {
	corpus := Corpus{"d": {
		"gold": seg(2, 3, 5),
		"x":    seg(2, 3, 5),
		"y":    seg(10),
	}}

	res := evaluate(t, corpus, MetricB, WithNearMiss(0), WithPairing(Permuted))

	type pair struct {
		ref, hyp string
		score    float64
		misses   int
	}
	want := []pair{
		{"gold", "x", 1, 0},
		{"gold", "y", 0, 2},
		{"x", "gold", 1, 0},
		{"x", "y", 0, 2},
		{"y", "gold", 0, 2},
		{"y", "x", 0, 2},
	}

	pairs := res.Documents[0].Pairs
	if len(pairs) != len(want) {
		t.Fatalf("len(Pairs) = %d, want %d", len(pairs), len(want))
	}
	for i, w := range want {
		p := pairs[i]
		if p.Reference != w.ref || p.Hypothesis != w.hyp {
			t.Errorf("Pairs[%d] = %s/%s, want %s/%s", i, p.Reference, p.Hypothesis, w.ref, w.hyp)
		}
		if v, err := p.Score.Float(); err != nil || !approx(v, w.score) {
			t.Errorf("Pairs[%d] score = %v, want %v", i, p.Score, w.score)
		}
		misses := p.Tally.Count(align.Addition) + p.Tally.Count(align.Deletion)
		if misses != w.misses || len(p.Edits) != w.misses {
			t.Errorf("Pairs[%d]: %d misses, %d edits, want %d", i, misses, len(p.Edits), w.misses)
		}
	}

	// The reference side of a missed boundary is reported as a deletion
	if got := pairs[1].Edits[0]; got.Kind != align.Deletion || got.Reference != 2 {
		t.Errorf("gold/y first edit = %+v, want deletion at 2", got)
	}
	if got := pairs[4].Edits[0]; got.Kind != align.Addition || got.Hypothesis != 2 {
		t.Errorf("y/gold first edit = %+v, want addition at 2", got)
	}

	if res.Summary.N != 6 {
		t.Errorf("Summary.N = %d, want 6", res.Summary.N)
	}
	if !approx(res.Summary.Mean, 1.0/3.0) {
		t.Errorf("Summary.Mean = %v, want 1/3", res.Summary.Mean)
	}
}

func TestEvaluate_Recall(t *testing.T) {
	// Reference b places both boundaries; hypothesis a places one of them.
	corpus := Corpus{"d": {"a": seg(5, 5), "b": seg(5, 2, 3)}}

	res := evaluate(t, corpus, MetricRecall, WithNearMiss(0))
	if got := score(t, res); !approx(got, 1) {
		t.Errorf("recall with a as reference = %v, want 1", got)
	}

	res = evaluate(t, corpus, MetricRecall, WithNearMiss(0), WithPairing(OneVsRest), WithReference("b"))
	if got := score(t, res); !approx(got, 0.5) {
		t.Errorf("recall with b as reference = %v, want 0.5", got)
	}

	res = evaluate(t, corpus, MetricPrecision, WithNearMiss(0), WithPairing(OneVsRest), WithReference("b"))
	if got := score(t, res); !approx(got, 1) {
		t.Errorf("precision with b as reference = %v, want 1", got)
	}
}

func TestEvaluate_WindowMetrics(t *testing.T) {
	corpus := Corpus{"d": {"a": seg(4, 4, 5), "b": seg(5, 3, 5)}}

	for _, m := range []Metric{MetricPk, MetricWindowDiff} {
		for _, agg := range []Aggregation{Mean, Pooled} {
			res := evaluate(t, corpus, m, WithAggregation(agg))
			if got := score(t, res); !approx(got, 2.0/11.0) {
				t.Errorf("%v (%v) = %v, want %v", m, agg, got, 2.0/11.0)
			}
		}
	}
}

func TestEvaluate_WindowPrecisionRecall(t *testing.T) {
	// Three windows agree, one has an extra hypothesis boundary and one
	// misses a reference boundary
	corpus := Corpus{"d": {"a": seg(4, 4, 5), "b": seg(5, 3, 5)}}

	for _, m := range []Metric{MetricWinF1, MetricWinPrecision, MetricWinRecall} {
		for _, agg := range []Aggregation{Mean, Pooled} {
			res := evaluate(t, corpus, m, WithAggregation(agg))
			if got := score(t, res); !approx(got, 0.75) {
				t.Errorf("%v (%v) = %v, want 0.75", m, agg, got)
			}
			if len(res.Documents[0].Pairs[0].Edits) != 0 {
				t.Errorf("%v: windowed pair carries edits", m)
			}
		}
	}

	// Recall is 0 when the reference places no boundaries
	res := evaluate(t, Corpus{"d": {"a": seg(13), "b": seg(4, 4, 5)}}, MetricWinRecall)
	if got := score(t, res); got != 0 {
		t.Errorf("window recall without reference boundaries = %v, want 0", got)
	}
}

func TestEvaluate_OneMinus(t *testing.T) {
	corpus := Corpus{"d": {"a": seg(4, 4, 5), "b": seg(5, 3, 5)}}

	for _, m := range []Metric{MetricPk, MetricWindowDiff} {
		for _, agg := range []Aggregation{Mean, Pooled} {
			res := evaluate(t, corpus, m, WithAggregation(agg), WithOneMinus(true))
			if got := score(t, res); !approx(got, 9.0/11.0) {
				t.Errorf("%v (%v) one minus = %v, want %v", m, agg, got, 9.0/11.0)
			}
			if !approx(res.Summary.Mean, 9.0/11.0) {
				t.Errorf("%v (%v) Summary.Mean = %v, want %v", m, agg, res.Summary.Mean, 9.0/11.0)
			}
		}
	}

	// Similarities are already oriented
	res := evaluate(t, corpus, MetricB, WithNearMiss(1), WithOneMinus(true))
	plain := evaluate(t, corpus, MetricB, WithNearMiss(1))
	if score(t, res) != score(t, plain) {
		t.Errorf("one minus changed B: %v vs %v", score(t, res), score(t, plain))
	}
}

func TestEvaluate_SegmentationSimilarity(t *testing.T) {
	corpus := Corpus{"d": {
		"a": seg(2, 3, 5),
		"b": seg(2, 3, 5),
		"c": seg(10),
	}}

	res := evaluate(t, corpus, MetricS, WithNearMiss(0))
	if got := score(t, res); !approx(got, 0.5) {
		t.Errorf("S = %v, want 0.5", got)
	}

	direct, err := SegmentationSimilarity(corpus["d"], 0)
	if err != nil {
		t.Fatalf("SegmentationSimilarity() error: %v", err)
	}
	if !approx(direct, score(t, res)) {
		t.Errorf("Evaluate S = %v, SegmentationSimilarity = %v", score(t, res), direct)
	}
}

func TestAgreementCoefficient(t *testing.T) {
	ctx := context.Background()

	t.Run("perfect agreement", func(t *testing.T) {
		for _, kind := range []Metric{MetricKappa, MetricPi, MetricAlpha} {
			s, err := AgreementCoefficient(ctx, Corpus{"same": testCorpus()["same"]}, kind)
			if err != nil {
				t.Fatalf("AgreementCoefficient(%v) error: %v", kind, err)
			}
			v, err := s.Float()
			if err != nil {
				t.Fatalf("%v undefined: %v", kind, err)
			}
			if !approx(v, 1) {
				t.Errorf("%v = %v, want 1", kind, v)
			}
		}
	})

	t.Run("undefined when no coder places a boundary", func(t *testing.T) {
		corpus := Corpus{
			"d1": {"a": seg(10), "b": seg(10)},
			"d2": {"a": seg(7), "b": seg(7), "c": seg(7)},
		}
		s, err := AgreementCoefficient(ctx, corpus, MetricKappa)
		if err != nil {
			t.Fatalf("AgreementCoefficient() error: %v", err)
		}
		if s.IsDefined() {
			t.Errorf("expected undefined score, got %v", s)
		}
		if _, err := s.Float(); !errors.Is(err, ErrUndefinedStatistic) {
			t.Errorf("expected ErrUndefinedStatistic, got: %v", err)
		}
	})

	t.Run("mean skips undefined documents", func(t *testing.T) {
		corpus := Corpus{
			"blank": {"a": seg(10), "b": seg(10)},
			"same":  {"a": seg(2, 3, 5), "b": seg(2, 3, 5)},
		}
		s, err := AgreementCoefficient(ctx, corpus, MetricKappa, WithAggregation(Mean))
		if err != nil {
			t.Fatalf("AgreementCoefficient() error: %v", err)
		}
		v, err := s.Float()
		if err != nil {
			t.Fatalf("expected defined score: %v", err)
		}
		if !approx(v, 1) {
			t.Errorf("kappa = %v, want 1", v)
		}

		res := evaluate(t, corpus, MetricKappa)
		if res.Undefined != 1 {
			t.Errorf("Undefined = %d, want 1", res.Undefined)
		}
		if res.Summary.N != 1 {
			t.Errorf("Summary.N = %d, want 1", res.Summary.N)
		}
	})

	t.Run("insufficient coders", func(t *testing.T) {
		_, err := AgreementCoefficient(ctx, Corpus{"d": {"a": seg(4)}}, MetricPi)
		if !errors.Is(err, ErrInsufficientCoders) {
			t.Errorf("expected ErrInsufficientCoders, got: %v", err)
		}
	})
}

func TestEvaluate_WorkerCountInvariant(t *testing.T) {
	corpus := Corpus{}
	for i := range 40 {
		id := fmt.Sprintf("doc%02d", i)
		corpus.Set(id, "a", seg(3+i%4, 7, 5))
		corpus.Set(id, "b", seg(5, 5+i%4, 5))
		corpus.Set(id, "c", seg(15+i%4))
	}

	for _, m := range []Metric{MetricB, MetricS, MetricKappa, MetricPk, MetricF1} {
		for _, agg := range []Aggregation{Mean, Pooled} {
			serial := evaluate(t, corpus, m, WithAggregation(agg), WithWorkers(1))
			parallel := evaluate(t, corpus, m, WithAggregation(agg), WithWorkers(8))
			if !reflect.DeepEqual(serial, parallel) {
				t.Errorf("%v (%v): results differ between 1 and 8 workers", m, agg)
			}
		}
	}
}

func TestEvaluate_ContextCancelled(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = e.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = e.Evaluate(ctx, testCorpus(), MetricB)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestEvaluate_AfterClose(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	_ = e.Close()

	_, err = e.Evaluate(context.Background(), testCorpus(), MetricB)
	if !errors.Is(err, align.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got: %v", err)
	}
}

func TestEvaluate_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	evaluate(t, testCorpus(), MetricB, WithLogger(logger))

	out := buf.String()
	if !strings.Contains(out, "corpus evaluated") {
		t.Errorf("log missing corpus summary: %s", out)
	}
	if got := strings.Count(out, "document evaluated"); got != 2 {
		t.Errorf("document log lines = %d, want 2", got)
	}
}

func TestParseMetric(t *testing.T) {
	for m := range metricNames {
		got, err := ParseMetric(m.String())
		if err != nil {
			t.Fatalf("ParseMetric(%q) error: %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMetric(%q) = %v, want %v", m.String(), got, m)
		}
	}

	if _, err := ParseMetric("nope"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got: %v", err)
	}
}

func TestParsePairingAndAggregation(t *testing.T) {
	for _, p := range []Pairing{AllPairs, OneVsRest, Permuted} {
		got, err := ParsePairing(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePairing(%q) = %v, %v", p.String(), got, err)
		}
	}
	for _, a := range []Aggregation{Mean, Pooled} {
		got, err := ParseAggregation(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAggregation(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParsePairing("pairs"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got: %v", err)
	}
}

func TestCorpus(t *testing.T) {
	c := Corpus{}
	c.Set("d2", "b", seg(4))
	c.Set("d1", "a", seg(2, 2))
	c.Set("d1", "b", seg(4))

	other := Corpus{"d3": {"a": seg(1)}, "d1": {"c": seg(3, 1)}}
	c.Merge(other)

	if got, want := c.IDs(), []string{"d1", "d2", "d3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if got, want := c["d1"].Coders(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Coders() = %v, want %v", got, want)
	}
	if got := c["d1"].Units(); got != 4 {
		t.Errorf("Units() = %d, want 4", got)
	}
	if got := (Document{}).Units(); got != 0 {
		t.Errorf("empty Units() = %d, want 0", got)
	}
}
