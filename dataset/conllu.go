package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/boundary"
)

// conlluDocument names sentences that precede any newdoc comment.
const conlluDocument = "document"

// ReadCoNLLU reads a CoNLL-U treebank as one coder's sentence segmentation:
// each sentence is a segment whose mass is its word count. Documents are
// delimited by "# newdoc id = ..." comments. Multiword token ranges and empty
// nodes are not counted.
func ReadCoNLLU(r io.Reader, coder string) (Dataset, error) {
	ds := Dataset{Corpus: segeval.Corpus{}}

	doc := conlluDocument
	var masses []int
	words := 0
	lineNo := 0

	flushSentence := func() {
		if words > 0 {
			masses = append(masses, words)
			words = 0
		}
	}
	flushDocument := func() error {
		flushSentence()
		if len(masses) == 0 {
			return nil
		}
		s, err := boundary.New(masses...)
		if err != nil {
			return fmt.Errorf("document %q: %w", doc, err)
		}
		ds.Corpus.Set(doc, coder, s)
		masses = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if id, ok := strings.CutPrefix(line, "# newdoc"); ok {
			if err := flushDocument(); err != nil {
				return Dataset{}, err
			}
			if _, value, found := strings.Cut(id, "="); found {
				doc = strings.TrimSpace(value)
			} else {
				doc = fmt.Sprintf("%s-%d", conlluDocument, lineNo)
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			flushSentence()
			continue
		}

		field, _, _ := strings.Cut(line, "\t")
		if strings.ContainsAny(field, "-.") {
			continue
		}
		if _, err := strconv.Atoi(field); err != nil {
			return Dataset{}, fmt.Errorf("%w: line %d: word id %q", ErrMalformedDataset, lineNo, field)
		}
		words++
	}
	if err := scanner.Err(); err != nil {
		return Dataset{}, fmt.Errorf("scan treebank: %w", err)
	}
	if err := flushDocument(); err != nil {
		return Dataset{}, err
	}

	if len(ds.Corpus) == 0 {
		return Dataset{}, fmt.Errorf("%w: no sentences", ErrMalformedDataset)
	}
	return ds, nil
}
