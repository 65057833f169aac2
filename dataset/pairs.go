package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/align"
)

// WritePairs writes one TSV row per compared coder pair of res:
//
//	document coder1 coder2 numerator denominator additions substitutions transpositions <metric>
//
// numerator and denominator are the unedited and total boundary counts
// behind boundary similarity. Additions count unmatched boundaries on
// either side. Edit columns are zero for windowed metrics.
func WritePairs(w io.Writer, res segeval.Result) error {
	cw := newTSVWriter(w)
	header := []string{"document", "coder1", "coder2", "numerator", "denominator",
		"additions", "substitutions", "transpositions", res.Metric.String()}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write pairs: %w", err)
	}

	for _, doc := range res.Documents {
		for _, p := range doc.Pairs {
			t := p.Tally
			row := []string{
				doc.ID,
				p.Reference,
				p.Hypothesis,
				formatFloat(t.MaxCost() - t.Cost()),
				strconv.Itoa(t.Boundaries),
				strconv.Itoa(t.Count(align.Addition) + t.Count(align.Deletion)),
				strconv.Itoa(t.Count(align.Substitution)),
				strconv.Itoa(t.Count(align.Transposition)),
				p.Score.String(),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write pairs: %w", err)
			}
		}
	}
	return flush(cw)
}

// WriteEdits writes one TSV row per non-match edit of every compared pair:
//
//	document coder1 coder2 edit reference hypothesis distance
//
// A side without a boundary is left empty.
func WriteEdits(w io.Writer, res segeval.Result) error {
	cw := newTSVWriter(w)
	header := []string{"document", "coder1", "coder2", "edit", "reference", "hypothesis", "distance"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write edits: %w", err)
	}

	for _, doc := range res.Documents {
		for _, p := range doc.Pairs {
			for _, op := range p.Edits {
				row := []string{
					doc.ID,
					p.Reference,
					p.Hypothesis,
					op.Kind.String(),
					formatPosition(op.Reference),
					formatPosition(op.Hypothesis),
					strconv.Itoa(op.Distance),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write edits: %w", err)
				}
			}
		}
	}
	return flush(cw)
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush tsv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPosition(p int) string {
	if p == align.None {
		return ""
	}
	return strconv.Itoa(p)
}
