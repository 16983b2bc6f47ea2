// Package model defines shared data structures.
package model

import "time"

// Config defines viewer settings for a single run.
type Config struct {
	InputPath    string
	DisplayWidth int
	Delay        time.Duration
	Threshold    float32
	Follow       bool
}

// RawRecord is one FASTQ read as decoded from the input stream.
type RawRecord struct {
	Name        []byte
	Description []byte
	Sequence    []byte
	Quality     []byte
}

// ScoredRecord pairs a record with its read index and average quality.
type ScoredRecord struct {
	Record     RawRecord
	Index      int
	AvgQuality float32
}
