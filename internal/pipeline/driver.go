package pipeline

import (
	"log/slog"

	"github.com/tgallois/cursus/internal/catalog"
	"github.com/tgallois/cursus/internal/chunk"
	"github.com/tgallois/cursus/internal/metadata"
	"github.com/tgallois/cursus/internal/ocr"
	"github.com/tgallois/cursus/internal/segment"
	"github.com/tgallois/cursus/internal/validate"
)

// Kind selects the document family and therefore the pattern catalog and
// chunk variant.
type Kind string

const (
	KindCurriculum    Kind = "curriculum"
	KindTeachingGuide Kind = "teaching_guide"
)

// Rejection records one discarded chunk with the rule it failed.
type Rejection struct {
	DocID string `json:"doc_id"`
	Index int    `json:"index"`
	Rule  string `json:"rule"`
	Field string `json:"field,omitempty"`
}

// DocResult is the terminal outcome of one document: the accepted chunks,
// the per-chunk rejections, and a document-level error when the input was
// unusable. A document-level failure never aborts the batch.
type DocResult struct {
	DocID      string
	Kind       Kind
	Curriculum []chunk.CurriculumChunk
	Guides     []chunk.GuideChunk
	Rejections []Rejection
	Err        error
}

// Accepted returns the accepted chunk count.
func (r *DocResult) Accepted() int {
	return len(r.Curriculum) + len(r.Guides)
}

// Rejected returns the rejected chunk count.
func (r *DocResult) Rejected() int {
	return len(r.Rejections)
}

// Driver runs segmentation, metadata extraction, assembly and validation
// over documents. It holds no mutable state; documents can be processed
// concurrently.
type Driver struct {
	curriculum *segment.Segmenter
	guides     *segment.Segmenter
	extractor  *metadata.Extractor
	assembler  *chunk.Assembler
	log        *slog.Logger
}

func NewDriver(win segment.Window, defaultCycle, lang string, log *slog.Logger) *Driver {
	return &Driver{
		curriculum: segment.New(catalog.Curriculum(), win),
		guides:     segment.New(catalog.TeachingGuide(), win),
		extractor:  metadata.NewExtractor(defaultCycle),
		assembler:  chunk.NewAssembler(lang),
		log:        log,
	}
}

// ProcessDocument runs the full chunking pipeline over one document:
// segment, extract metadata per leaf, assemble, validate. Rejected chunks
// are logged and counted, never stored.
func (d *Driver) ProcessDocument(doc *ocr.Document, kind Kind) DocResult {
	result := DocResult{DocID: doc.DocID, Kind: kind}
	log := d.log.With("doc_id", doc.DocID, "kind", string(kind))

	if err := doc.CheckPages(); err != nil {
		log.Error("document rejected", "error", err)
		result.Err = err
		return result
	}

	switch kind {
	case KindTeachingGuide:
		d.processGuide(doc, &result, log)
	default:
		d.processCurriculum(doc, &result, log)
	}

	log.Info("document chunked", "accepted", result.Accepted(), "rejected", result.Rejected())
	return result
}

func (d *Driver) processCurriculum(doc *ocr.Document, result *DocResult, log *slog.Logger) {
	for i, leaf := range d.curriculum.Segment(doc) {
		meta := d.extractor.Curriculum(leaf)
		c, err := d.assembler.Curriculum(leaf, meta)
		if err != nil {
			log.Warn("chunk assembly failed", "leaf", i, "error", err)
			result.Rejections = append(result.Rejections, Rejection{
				DocID: doc.DocID, Index: i, Rule: "assembly",
			})
			continue
		}
		if v := validate.Curriculum(&c); v != nil {
			log.Warn("chunk rejected",
				"leaf", i, "chunk_id", c.ID, "subject", c.Subject, "topic", c.Topic,
				"rule", v.Rule, "field", v.Field)
			result.Rejections = append(result.Rejections, Rejection{
				DocID: doc.DocID, Index: i, Rule: v.Rule, Field: v.Field,
			})
			continue
		}
		result.Curriculum = append(result.Curriculum, c)
	}
}

func (d *Driver) processGuide(doc *ocr.Document, result *DocResult, log *slog.Logger) {
	for i, leaf := range d.guides.Segment(doc) {
		meta := d.extractor.Guide(leaf)
		g, err := d.assembler.Guide(leaf, meta)
		if err != nil {
			log.Warn("chunk assembly failed", "leaf", i, "error", err)
			result.Rejections = append(result.Rejections, Rejection{
				DocID: doc.DocID, Index: i, Rule: "assembly",
			})
			continue
		}
		if v := validate.Guide(&g); v != nil {
			log.Warn("chunk rejected",
				"leaf", i, "chunk_id", g.ID, "guide_type", g.GuideType, "topic", g.Topic,
				"rule", v.Rule, "field", v.Field)
			result.Rejections = append(result.Rejections, Rejection{
				DocID: doc.DocID, Index: i, Rule: v.Rule, Field: v.Field,
			})
			continue
		}
		result.Guides = append(result.Guides, g)
	}
}
