// Package chunk defines the terminal chunk records and assembles them from
// segmentation output and extracted metadata.
package chunk

// CurriculumChunk is a validated passage of a curriculum (programme)
// document, shaped for the curriculum_chunks table.
type CurriculumChunk struct {
	ID                string   `json:"id"`
	DocID             string   `json:"doc_id"`
	Cycle             string   `json:"cycle"`
	Grades            []string `json:"grades"`
	Subject           string   `json:"subject"`
	SectionType       string   `json:"section_type"`
	Topic             string   `json:"topic"`
	Subtopic          string   `json:"subtopic"`
	IsCycleWide       bool     `json:"is_cycle_wide"`
	ChunkText         string   `json:"chunk_text"`
	PageStart         int      `json:"page_start"`
	PageEnd           int      `json:"page_end"`
	TokenCount        int      `json:"token_count"`
	SourceParagraphID string   `json:"source_paragraph_id"`
	Lang              string   `json:"lang"`
}

// GuideChunk is a validated passage of a teaching-guide document, shaped
// for the teaching_guides_chunks table.
type GuideChunk struct {
	ID                   string   `json:"id"`
	DocID                string   `json:"doc_id"`
	GuideType            string   `json:"guide_type"`
	ApplicableGrades     []string `json:"applicable_grades"`
	Topic                string   `json:"topic"`
	Subtopic             string   `json:"subtopic"`
	SectionHeader        string   `json:"section_header"`
	ApplicableCategories []string `json:"applicable_categories"`
	IsGeneral            bool     `json:"is_general"`
	ChunkText            string   `json:"chunk_text"`
	PageStart            int      `json:"page_start"`
	PageEnd              int      `json:"page_end"`
	TokenCount           int      `json:"token_count"`
	Lang                 string   `json:"lang"`
}
