package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for corpus records.
// Identifiers are short opaque strings: either carried over from the source
// data or derived from verse content via IDFromContent. Deterministic
// ordering throughout the engine is byte-wise lexicographic order on ID.
type ID string

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID, which keeps re-ingestion of
// the same source file idempotent.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// Source identifies the retrieval stage that produced a candidate or match.
type Source string

const (
	SourceExact    Source = "exact"
	SourceSparse   Source = "sparse"
	SourceDense    Source = "dense"
	SourceFallback Source = "fallback"
)

// Record is a single annotated verse in the corpus.
type Record struct {
	// ID uniquely identifies the record within the corpus.
	ID ID

	// Verse is the primary verse text as it appears in the source.
	Verse string

	// Annotation is the commentary or explanation accompanying the verse.
	// May be empty.
	Annotation string

	// Poet is the attributed author.
	Poet string

	// Poem names the poem the verse belongs to.
	Poem string

	// VerseNumber is the 1-based position of the verse within its poem.
	VerseNumber int

	// SourceBook is the bibliographic origin of the record.
	SourceBook string

	// Normalized is the canonical form of Verse, computed at load time
	// by NormalizeText. Matching and indexing operate on this field.
	Normalized string

	// Vector is the embedding of EmbeddingText. Empty until ingestion
	// or index construction populates it.
	Vector []float32
}

// EmbeddingText returns the text embedded for dense retrieval: the verse,
// followed by its annotation when one exists. Embedding the annotation
// alongside the verse lets paraphrased queries land on the right record.
func (r *Record) EmbeddingText() string {
	if r.Annotation == "" {
		return r.Verse
	}
	return r.Verse + "\n" + r.Annotation
}

// Candidate is an intermediate scored reference to a record, produced by a
// single retrieval stage before fusion. Scores are stage-local and only
// comparable within the list that produced them.
type Candidate struct {
	ID     ID
	Score  float64
	Source Source
}

// Match is a final retrieval result with a score in [0, 1].
type Match struct {
	Record *Record
	Score  float64
	Source Source
}
