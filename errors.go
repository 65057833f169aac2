package segeval

import (
	"errors"

	"github.com/jamesainslie/go-segeval/align"
	"github.com/jamesainslie/go-segeval/boundary"
	"github.com/jamesainslie/go-segeval/confusion"
	"github.com/jamesainslie/go-segeval/metric"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrMalformedSegmentation indicates an empty or non-positive mass sequence.
	ErrMalformedSegmentation = boundary.ErrMalformedSegmentation

	// ErrIncomparableSegmentations indicates segmentations of different lengths.
	ErrIncomparableSegmentations = boundary.ErrIncomparableSegmentations

	// ErrInvalidNearMiss indicates a negative near-miss window.
	ErrInvalidNearMiss = align.ErrInvalidNearMiss

	// ErrInvalidWindow indicates a negative window size.
	ErrInvalidWindow = confusion.ErrInvalidWindow

	// ErrUndefinedStatistic indicates a score with a zero denominator.
	ErrUndefinedStatistic = metric.ErrUndefinedStatistic

	// ErrInsufficientCoders indicates a document with fewer than two coders.
	ErrInsufficientCoders = errors.New("segeval: fewer than two coders")

	// ErrUnknownCoder indicates a reference coder missing from a document.
	ErrUnknownCoder = errors.New("segeval: unknown coder")

	// ErrEmptyCorpus indicates a corpus without documents.
	ErrEmptyCorpus = errors.New("segeval: empty corpus")

	// ErrUnknownMetric indicates an unrecognised metric, pairing or
	// aggregation name.
	ErrUnknownMetric = errors.New("segeval: unknown metric")
)
