package dataset

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	segeval "github.com/jamesainslie/go-segeval"
	"github.com/jamesainslie/go-segeval/boundary"
)

// Binary layout, as protobuf messages:
//
//	message Dataset { string name = 1; repeated Item items = 2; }
//	message Item    { string id = 1; repeated Coding codings = 2; }
//	message Coding  { string coder = 1; repeated uint64 masses = 2 [packed = true]; }
const (
	fieldDatasetName  protowire.Number = 1
	fieldDatasetItems protowire.Number = 2
	fieldItemID       protowire.Number = 1
	fieldItemCodings  protowire.Number = 2
	fieldCodingCoder  protowire.Number = 1
	fieldCodingMasses protowire.Number = 2
)

// MarshalBinary encodes ds in the binary wire format. Documents and coders
// are written in sort order, so equal datasets encode identically.
func MarshalBinary(ds Dataset) ([]byte, error) {
	var b []byte
	if ds.Name != "" {
		b = protowire.AppendTag(b, fieldDatasetName, protowire.BytesType)
		b = protowire.AppendString(b, ds.Name)
	}

	for _, id := range ds.Corpus.IDs() {
		doc := ds.Corpus[id]

		var item []byte
		item = protowire.AppendTag(item, fieldItemID, protowire.BytesType)
		item = protowire.AppendString(item, id)
		for _, coder := range doc.Coders() {
			s := doc[coder]
			if !s.Valid() {
				return nil, fmt.Errorf("%w: document %q coder %q", boundary.ErrMalformedSegmentation, id, coder)
			}

			item = protowire.AppendTag(item, fieldItemCodings, protowire.BytesType)
			item = protowire.AppendBytes(item, appendCoding(nil, coder, s.Masses()))
		}

		b = protowire.AppendTag(b, fieldDatasetItems, protowire.BytesType)
		b = protowire.AppendBytes(b, item)
	}
	return b, nil
}

func appendCoding(b []byte, coder string, masses []int) []byte {
	b = protowire.AppendTag(b, fieldCodingCoder, protowire.BytesType)
	b = protowire.AppendString(b, coder)

	var packed []byte
	for _, m := range masses {
		packed = protowire.AppendVarint(packed, uint64(m))
	}
	b = protowire.AppendTag(b, fieldCodingMasses, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

// UnmarshalBinary decodes the binary wire format. Unknown fields are
// skipped; masses may be packed or unpacked.
func UnmarshalBinary(b []byte) (Dataset, error) {
	ds := Dataset{Corpus: segeval.Corpus{}}

	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldDatasetName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			ds.Name = v
			return n, nil
		case num == fieldDatasetItems && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			return n, decodeItem(v, ds.Corpus)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func decodeItem(b []byte, corpus segeval.Corpus) error {
	var id string
	type coding struct {
		coder  string
		masses []int
	}
	var codings []coding

	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldItemID && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			id = v
			return n, nil
		case num == fieldItemCodings && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			coder, masses, err := decodeCoding(v)
			codings = append(codings, coding{coder, masses})
			return n, err
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return err
	}

	// Fields may arrive in any order, so the id is only known at the end
	for _, c := range codings {
		s, err := boundary.New(c.masses...)
		if err != nil {
			return fmt.Errorf("document %q coder %q: %w", id, c.coder, err)
		}
		corpus.Set(id, c.coder, s)
	}
	return nil
}

func decodeCoding(b []byte) (string, []int, error) {
	var coder string
	var masses []int

	appendMass := func(v uint64) error {
		if v > math.MaxInt32 {
			return fmt.Errorf("%w: mass %d out of range", ErrMalformedDataset, v)
		}
		masses = append(masses, int(v))
		return nil
	}

	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldCodingCoder && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			coder = v
			return n, nil
		case num == fieldCodingMasses && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return 0, fmt.Errorf("%w: packed masses: %w", ErrMalformedDataset, protowire.ParseError(m))
				}
				if err := appendMass(v); err != nil {
					return 0, err
				}
				packed = packed[m:]
			}
			return n, nil
		case num == fieldCodingMasses && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return n, nil
			}
			return n, appendMass(v)
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return coder, masses, err
}

// walk calls field for every field in b. field consumes the value following
// the tag and returns its length, negative on a parse error.
func walk(b []byte, field func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedDataset, protowire.ParseError(n))
		}
		b = b[n:]

		n, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedDataset, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
