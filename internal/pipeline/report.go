package pipeline

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// DocStatus is the outcome of building one document.
type DocStatus string

const (
	StatusBuilt        DocStatus = "built"
	StatusDraftSkipped DocStatus = "draft_skipped"
	StatusFailed       DocStatus = "failed"
)

// DocReport tracks a single document through a build.
type DocReport struct {
	Path        string    `json:"path"`
	Key         string    `json:"key,omitempty"`
	Status      DocStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
}

// Report is the per-build document registry. A build fills it from one
// goroutine.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time

	docs   []DocReport
	errors []string
}

func NewReport(started time.Time) *Report {
	return &Report{StartedAt: started}
}

// Add records a document outcome.
func (r *Report) Add(d DocReport) {
	r.docs = append(r.docs, d)
	if d.Status == StatusFailed && d.Error != "" {
		r.errors = append(r.errors, d.Path+": "+d.Error)
	}
}

// Finish stamps the end of the build.
func (r *Report) Finish(at time.Time) {
	r.FinishedAt = at
}

// Count returns how many documents ended in status.
func (r *Report) Count(status DocStatus) int {
	n := 0
	for _, d := range r.docs {
		if d.Status == status {
			n++
		}
	}
	return n
}

// ReportSnapshot is a read-only, JSON-safe copy of the report.
type ReportSnapshot struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Counts     map[DocStatus]int `json:"counts"`
	Documents  []DocReport       `json:"documents"`
	Errors     []string          `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the report.
func (r *Report) Snapshot() ReportSnapshot {
	counts := map[DocStatus]int{StatusBuilt: 0, StatusDraftSkipped: 0, StatusFailed: 0}
	for _, d := range r.docs {
		counts[d.Status]++
	}
	errs := append([]string{}, r.errors...)
	return ReportSnapshot{
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Counts:     counts,
		Documents:  append([]DocReport{}, r.docs...),
		Errors:     errs,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
