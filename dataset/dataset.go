// Package dataset reads and writes segmentation corpora.
//
// Four formats are supported, selected by file extension:
//
//	.json    {"id": name, "items": {document: {coder: [mass, ...]}}}
//	.tsv     one coder per row: coder<TAB>mass<TAB>mass...; the document id
//	         is the file name without extension
//	.segpb   protobuf wire encoding of Dataset (see wire.go)
//	.conllu  sentence segmentation of a treebank; the coder id is the file
//	         name without extension, masses are words per sentence
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	segeval "github.com/jamesainslie/go-segeval"
)

// ErrUnsupportedFormat indicates a file extension no codec handles.
var ErrUnsupportedFormat = errors.New("segeval: unsupported dataset format")

// ErrMalformedDataset indicates a file that does not decode as a dataset.
var ErrMalformedDataset = errors.New("segeval: malformed dataset")

// Extensions recognised by LoadFile.
const (
	ExtJSON   = ".json"
	ExtTSV    = ".tsv"
	ExtBinary = ".segpb"
	ExtCoNLLU = ".conllu"
)

// Dataset is a named corpus.
type Dataset struct {
	Name   string
	Corpus segeval.Corpus
}

// Supported reports whether LoadFile can read path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON, ExtTSV, ExtBinary, ExtCoNLLU:
		return true
	}
	return false
}

// LoadFile reads one dataset file, choosing the codec by extension.
func LoadFile(path string) (Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return Dataset{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	var ds Dataset
	switch ext {
	case ExtJSON:
		ds, err = ReadJSON(f)
	case ExtTSV:
		ds, err = ReadTSV(f, id)
	case ExtCoNLLU:
		ds, err = ReadCoNLLU(f, id)
	default:
		var data []byte
		data, err = io.ReadAll(f)
		if err == nil {
			ds, err = UnmarshalBinary(data)
		}
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("loading %s: %w", base, err)
	}
	if ds.Name == "" {
		ds.Name = id
	}
	return ds, nil
}

// LoadDir reads every supported file in dir and merges them into one
// dataset named after the directory. Subdirectories are skipped.
func LoadDir(dir string) (Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dir: %w", err)
	}

	ds := Dataset{
		Name:   filepath.Base(filepath.Clean(dir)),
		Corpus: segeval.Corpus{},
	}
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}

		part, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return Dataset{}, err
		}
		ds.Corpus.Merge(part.Corpus)
	}
	return ds, nil
}

// Load reads path as a directory or a single file.
func Load(path string) (Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// WriteBinary writes ds to path in the binary wire format.
func WriteBinary(path string, ds Dataset) error {
	data, err := MarshalBinary(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// WriteJSON writes ds to path as JSON.
func WriteJSON(path string, ds Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	if err := EncodeJSON(f, ds); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
