package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/boundary"
)

// ReadTSV decodes one document from tab-separated rows of
// coder<TAB>mass<TAB>mass... Lines starting with '#' are comments.
func ReadTSV(r io.Reader, id string) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	ds := Dataset{Corpus: segeval.Corpus{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
		}
		line, _ := cr.FieldPos(0)

		coder := strings.TrimSpace(rec[0])
		if coder == "" {
			return Dataset{}, fmt.Errorf("%w: line %d: missing coder", ErrMalformedDataset, line)
		}

		var masses []int
		for _, field := range rec[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			m, err := strconv.Atoi(field)
			if err != nil {
				return Dataset{}, fmt.Errorf("%w: line %d: mass %q", ErrMalformedDataset, line, field)
			}
			masses = append(masses, m)
		}

		s, err := boundary.New(masses...)
		if err != nil {
			return Dataset{}, fmt.Errorf("line %d coder %q: %w", line, coder, err)
		}
		ds.Corpus.Set(id, coder, s)
	}

	if len(ds.Corpus) == 0 {
		return Dataset{}, fmt.Errorf("%w: no codings", ErrMalformedDataset)
	}
	return ds, nil
}
