package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/boundary"
)

const linearType = "linear"

type jsonDataset struct {
	ID               string                      `json:"id,omitempty"`
	SegmentationType string                      `json:"segmentation_type,omitempty"`
	Items            map[string]map[string][]int `json:"items"`
}

// ReadJSON decodes a JSON dataset of linear segment masses.
func ReadJSON(r io.Reader) (Dataset, error) {
	var raw jsonDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrMalformedDataset, err)
	}
	if raw.SegmentationType != "" && raw.SegmentationType != linearType {
		return Dataset{}, fmt.Errorf("%w: segmentation type %q", ErrMalformedDataset, raw.SegmentationType)
	}
	if raw.Items == nil {
		return Dataset{}, fmt.Errorf("%w: missing items", ErrMalformedDataset)
	}

	ds := Dataset{Name: raw.ID, Corpus: segeval.Corpus{}}
	for doc, codings := range raw.Items {
		for coder, masses := range codings {
			s, err := boundary.New(masses...)
			if err != nil {
				return Dataset{}, fmt.Errorf("document %q coder %q: %w", doc, coder, err)
			}
			ds.Corpus.Set(doc, coder, s)
		}
	}
	return ds, nil
}

// EncodeJSON writes ds as indented JSON.
func EncodeJSON(w io.Writer, ds Dataset) error {
	raw := jsonDataset{
		ID:               ds.Name,
		SegmentationType: linearType,
		Items:            make(map[string]map[string][]int, len(ds.Corpus)),
	}
	for id, doc := range ds.Corpus {
		codings := make(map[string][]int, len(doc))
		for coder, s := range doc {
			codings[coder] = s.Masses()
		}
		raw.Items[id] = codings
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}
