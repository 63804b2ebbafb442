// Package storage persists crawl results to flat files.
package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"vidcrawl/crawl"
)

// StorageError wraps errors during storage operations.
type StorageError struct {
	// Op is the operation that failed ("write", "read").
	Op string
	// Path is the file involved.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	return "storage: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// SaveResults writes results to path as JSON Lines, one result per line.
// The write is atomic: readers never observe a partially-written file.
func SaveResults(path string, results []crawl.Result) error {
	writer, err := NewAtomicWriter(path)
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	buf := bufio.NewWriter(writer)
	encoder := json.NewEncoder(buf)
	for _, result := range results {
		if err := encoder.Encode(result); err != nil {
			writer.Abort()
			return &StorageError{Op: "write", Path: path, Err: err}
		}
	}

	if err := buf.Flush(); err != nil {
		writer.Abort()
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := writer.Commit(); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// LoadResults reads a JSON Lines results file written by SaveResults.
func LoadResults(path string) ([]crawl.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	defer file.Close()

	var results []crawl.Result
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var result crawl.Result
		if err := decoder.Decode(&result); err != nil {
			return nil, &StorageError{Op: "read", Path: path, Err: err}
		}
		results = append(results, result)
	}

	return results, nil
}

// RunReport summarizes one completed crawl run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the crawl completed.
	FinishedAt time.Time `json:"finished_at"`
	// Keywords are the seed keywords that were crawled.
	Keywords []string `json:"keywords"`
	// ResultsByKeyword counts discovered videos per seed keyword.
	ResultsByKeyword map[string]int `json:"results_by_keyword"`
	// TotalResults is the aggregate result count across all seeds.
	TotalResults int `json:"total_results"`
}

// NewRunReport creates a report for a run that started at startedAt.
func NewRunReport(startedAt time.Time, keywords []string) *RunReport {
	return &RunReport{
		RunID:            uuid.NewString(),
		StartedAt:        startedAt,
		Keywords:         keywords,
		ResultsByKeyword: make(map[string]int),
	}
}

// Record adds one seed keyword's result count to the report.
func (r *RunReport) Record(keyword string, count int) {
	r.ResultsByKeyword[keyword] = count
	r.TotalResults += count
}

// Save writes the report as indented JSON to path, atomically.
func (r *RunReport) Save(path string) error {
	r.FinishedAt = time.Now()

	writer, err := NewAtomicWriter(path)
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		writer.Abort()
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	return writer.Commit()
}
