package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/store"
)

// TextExtractor is the OCR collaborator contract: document bytes in,
// ordered pages out. Both the Mistral client and the local parser
// fallback satisfy it.
type TextExtractor interface {
	ProcessDocument(ctx context.Context, data []byte, filename string) (*ocr.Document, error)
}

// ChunkStore is the slice of the store client the worker needs.
type ChunkStore interface {
	InsertBatch(ctx context.Context, table string, records []any) error
	ClearTable(ctx context.Context, table string) error
}

// Worker processes a single document job end to end: text extraction,
// chunking, storage.
type Worker struct {
	extract TextExtractor
	store   ChunkStore
	driver  *Driver
	log     *slog.Logger
}

func NewWorker(extract TextExtractor, st ChunkStore, driver *Driver, log *slog.Logger) *Worker {
	return &Worker{
		extract: extract,
		store:   st,
		driver:  driver,
		log:     log,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "kind", string(job.Kind))
	defer job.releaseFileData()

	// Phase 1: text extraction (OCR or local fallback).
	job.SetStatus(StatusExtracting, "extract_text")
	doc, err := w.extract.ProcessDocument(ctx, job.FileData(), job.Filename)
	if err != nil {
		log.Error("text extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extract_text")
		return
	}
	doc.DocID = job.DocID
	log.Info("text extracted", "pages", len(doc.Pages))

	// Phase 2: segment, extract metadata, assemble, validate.
	job.SetStatus(StatusChunking, "chunking")
	result := w.driver.ProcessDocument(doc, job.Kind)
	job.SetCounts(result.Accepted(), result.Rejected(), 0)
	if result.Err != nil {
		job.AddError(result.Err.Error())
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	if result.Accepted() == 0 {
		log.Warn("no valid chunks produced")
		job.AddError("no valid chunks")
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	// Phase 3: store accepted chunks.
	job.SetStatus(StatusStoring, "storing")
	table, records := tableRecords(&result)

	if job.ClearFirst {
		if err := w.store.ClearTable(ctx, table); err != nil {
			log.Error("table clear failed", "table", table, "error", err)
			job.AddError(fmt.Sprintf("clear %s: %s", table, err))
			job.SetStatus(StatusFailed, "storing")
			return
		}
	}

	if err := w.store.InsertBatch(ctx, table, records); err != nil {
		log.Error("store insert failed", "table", table, "error", err)
		job.AddError(fmt.Sprintf("insert: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.SetCounts(result.Accepted(), result.Rejected(), len(records))
	log.Info("chunks stored", "table", table, "stored", len(records))

	if result.Rejected() > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// tableRecords maps a document result to its target table and the records
// to insert.
func tableRecords(result *DocResult) (string, []any) {
	if result.Kind == KindTeachingGuide {
		records := make([]any, 0, len(result.Guides))
		for i := range result.Guides {
			records = append(records, &result.Guides[i])
		}
		return store.GuidesTable, records
	}
	records := make([]any, 0, len(result.Curriculum))
	for i := range result.Curriculum {
		records = append(records, &result.Curriculum[i])
	}
	return store.CurriculumTable, records
}
