package chunk

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/tgallois/cursus/internal/metadata"
	"github.com/tgallois/cursus/internal/segment"
)

// Assembler combines leaf windows with metadata records into chunk
// records. IDs are derived from content-stable fields so re-running
// ingestion on an unchanged document yields the same identifiers.
type Assembler struct {
	lang string
}

func NewAssembler(lang string) *Assembler {
	if lang == "" {
		lang = "fr"
	}
	return &Assembler{lang: lang}
}

// Curriculum builds a curriculum chunk from a leaf and its metadata. A
// missing required upstream field is an assembly error, reported rather
// than silently dropped.
func (a *Assembler) Curriculum(leaf segment.Leaf, meta metadata.Curriculum) (CurriculumChunk, error) {
	if err := checkLeaf(leaf); err != nil {
		return CurriculumChunk{}, err
	}

	start, end := leaf.PageSpan()
	sourceParagraphID := fmt.Sprintf("%s_%s_%d_%d", meta.Subject, meta.Topic, leaf.LineStart, leaf.Index)

	return CurriculumChunk{
		ID:                stableID(leaf.DocID, meta.Subject, meta.Topic, start, sourceParagraphID),
		DocID:             leaf.DocID,
		Cycle:             meta.Cycle,
		Grades:            meta.Grades,
		Subject:           meta.Subject,
		SectionType:       meta.SectionType,
		Topic:             meta.Topic,
		Subtopic:          meta.Subtopic,
		IsCycleWide:       meta.IsCycleWide,
		ChunkText:         leaf.Text,
		PageStart:         start,
		PageEnd:           end,
		TokenCount:        leaf.Tokens,
		SourceParagraphID: sourceParagraphID,
		Lang:              a.lang,
	}, nil
}

// Guide builds a teaching-guide chunk from a leaf and its metadata.
func (a *Assembler) Guide(leaf segment.Leaf, meta metadata.Guide) (GuideChunk, error) {
	if err := checkLeaf(leaf); err != nil {
		return GuideChunk{}, err
	}

	start, end := leaf.PageSpan()
	position := fmt.Sprintf("%d_%d", leaf.LineStart, leaf.Index)

	return GuideChunk{
		ID:                   stableID(leaf.DocID, meta.GuideType, meta.Topic, start, position),
		DocID:                leaf.DocID,
		GuideType:            meta.GuideType,
		ApplicableGrades:     meta.Grades,
		Topic:                meta.Topic,
		Subtopic:             meta.Subtopic,
		SectionHeader:        meta.SectionHeader,
		ApplicableCategories: meta.Categories,
		IsGeneral:            meta.IsGeneral,
		ChunkText:            leaf.Text,
		PageStart:            start,
		PageEnd:              end,
		TokenCount:           leaf.Tokens,
		Lang:                 a.lang,
	}, nil
}

// checkLeaf verifies the upstream fields a chunk cannot be built without.
func checkLeaf(leaf segment.Leaf) error {
	if strings.TrimSpace(leaf.DocID) == "" {
		return fmt.Errorf("assemble: missing doc_id")
	}
	if strings.TrimSpace(leaf.Text) == "" {
		return fmt.Errorf("assemble: empty chunk text")
	}
	if len(leaf.Pages) == 0 {
		return fmt.Errorf("assemble: no pages for leaf %d of %s", leaf.Index, leaf.DocID)
	}
	return nil
}

// stableID hashes chunk-identifying fields into a fixed-width hex string.
func stableID(docID, kind, topic string, pageStart int, position string) string {
	key := fmt.Sprintf("%s_%s_%s_%d_%s", docID, kind, topic, pageStart, position)
	sum := md5.Sum([]byte(key))
	return fmt.Sprintf("%x", sum)[:16]
}
