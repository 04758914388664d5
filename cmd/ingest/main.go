package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/tgallois/cursus/internal/config"
	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/parser"
	"github.com/tgallois/cursus/internal/pipeline"
	"github.com/tgallois/cursus/internal/segment"
	"github.com/tgallois/cursus/internal/store"
)

// ingest walks a folder of documents and loads their chunks into the
// chunk store, one document at a time. It is the offline counterpart of
// the ingest API.
func main() {
	dir := flag.String("dir", ".", "folder to scan for documents")
	docType := flag.String("type", "curriculum", "document type: curriculum or teaching_guide")
	clear := flag.Bool("clear", false, "clear the target table before inserting")
	dryRun := flag.Bool("dry-run", false, "chunk and validate without storing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*dir, *docType, *clear, *dryRun, log); err != nil {
		log.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

func run(dir, docType string, clear, dryRun bool, log *slog.Logger) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var kind pipeline.Kind
	switch docType {
	case string(pipeline.KindCurriculum):
		kind = pipeline.KindCurriculum
	case string(pipeline.KindTeachingGuide):
		kind = pipeline.KindTeachingGuide
	default:
		return fmt.Errorf("unknown type: %s", docType)
	}

	var extractor pipeline.TextExtractor
	if cfg.MistralAPIKey != "" {
		extractor = ocr.NewClient(cfg.MistralAPIKey, cfg.MistralModel)
	} else {
		log.Warn("MISTRAL_API_KEY not set, using local text extraction")
		extractor = parser.NewLocal()
	}

	var st *store.Client
	if !dryRun {
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required (or use -dry-run)")
		}
		st = store.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)
	}

	files, err := listDocuments(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported documents in %s", dir)
	}
	log.Info("scanning folder", "dir", dir, "files", len(files), "type", docType)

	win := segment.Window{Min: cfg.TokenMin, Max: cfg.TokenMax, AbsMin: cfg.TokenAbsMin}
	driver := pipeline.NewDriver(win, cfg.DefaultCycle, cfg.Lang, log)

	table := store.CurriculumTable
	if kind == pipeline.KindTeachingGuide {
		table = store.GuidesTable
	}

	ctx := context.Background()
	if clear && !dryRun {
		if err := st.ClearTable(ctx, table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		log.Info("table cleared", "table", table)
	}

	var accepted, rejected, stored, failed int
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("read failed", "file", path, "error", err)
			failed++
			continue
		}
		filename := filepath.Base(path)

		doc, err := extractor.ProcessDocument(ctx, data, filename)
		if err != nil {
			log.Error("extraction failed", "file", filename, "error", err)
			failed++
			continue
		}

		result := driver.ProcessDocument(doc, kind)
		if result.Err != nil {
			log.Error("document rejected", "file", filename, "error", result.Err)
			failed++
			continue
		}
		accepted += result.Accepted()
		rejected += result.Rejected()

		if dryRun || result.Accepted() == 0 {
			log.Info("document processed", "file", filename,
				"accepted", result.Accepted(), "rejected", result.Rejected())
			continue
		}

		records := chunkRecords(&result)
		if err := st.InsertBatch(ctx, table, records); err != nil {
			log.Error("insert failed", "file", filename, "error", err)
			failed++
			continue
		}
		stored += len(records)
		log.Info("document stored", "file", filename,
			"accepted", result.Accepted(), "rejected", result.Rejected())
	}

	log.Info("ingestion complete",
		"files", len(files),
		"failed_files", failed,
		"chunks_accepted", accepted,
		"chunks_rejected", rejected,
		"chunks_stored", stored,
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func chunkRecords(result *pipeline.DocResult) []any {
	if result.Kind == pipeline.KindTeachingGuide {
		records := make([]any, 0, len(result.Guides))
		for i := range result.Guides {
			records = append(records, &result.Guides[i])
		}
		return records
	}
	records := make([]any, 0, len(result.Curriculum))
	for i := range result.Curriculum {
		records = append(records, &result.Curriculum[i])
	}
	return records
}
