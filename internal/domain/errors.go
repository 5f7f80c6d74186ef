package domain

import "errors"

var (
	// ErrEmptyDocument is returned when extraction handed over no usable
	// text. The ingest aborts and the previously published store, if any,
	// stays queryable.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrIngestBusy is returned when an ingest is requested while another
	// one is still running. Only one ingest may run at a time.
	ErrIngestBusy = errors.New("another ingest is already in progress")
)
