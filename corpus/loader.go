package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/baytlab/bayt/core"
)

// annotationMarker separates verse text from its commentary in source files
// that store both in a single text field.
const annotationMarker = "الشرح:"

// row mirrors one entry of a corpus JSON file. The format accepts both
// pre-split records (verse_text + explanation) and combined records where
// the text field holds "verse الشرح: commentary".
type row struct {
	ID          string `json:"id"`
	ChunkID     int    `json:"chunk_id"`
	Verse       string `json:"verse_text"`
	Explanation string `json:"explanation"`
	Text        string `json:"text"`
	VerseNumber int    `json:"verse_number"`
	Poet        string `json:"poet_name"`
	Poem        string `json:"poem_name"`
	Source      struct {
		Book string `json:"book"`
	} `json:"source"`
}

// LoadFile reads and parses a corpus JSON file from disk.
func LoadFile(path string) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses a corpus from r and returns validated records in source order.
//
// Each record gets its Normalized field populated from the verse text, so
// downstream consumers never normalize record text themselves. Records
// missing an explicit id receive a content-derived one.
//
// Returns ErrLoad for malformed input or invalid records, and
// core.ErrEmptyCorpus when the file parses but contains no records.
func Load(r io.Reader) ([]*core.Record, error) {
	var rows []row
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrLoad, err)
	}

	if len(rows) == 0 {
		return nil, core.ErrEmptyCorpus
	}

	records := make([]*core.Record, 0, len(rows))
	for i, row := range rows {
		record, err := buildRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrLoad, i, err)
		}
		records = append(records, record)
	}

	if err := core.ValidateRecords(records); err != nil {
		if errors.Is(err, core.ErrEmptyCorpus) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	return records, nil
}

func buildRecord(row row) (*core.Record, error) {
	verse := strings.TrimSpace(row.Verse)
	annotation := strings.TrimSpace(row.Explanation)

	// Combined format: split "verse الشرح: commentary".
	if verse == "" && row.Text != "" {
		split := splitAnnotated(row.Text)
		verse = split[0]
		if annotation == "" {
			annotation = split[1]
		}
	}

	if verse == "" {
		return nil, core.ErrEmptyVerse
	}

	normalized := core.NormalizeText(verse)
	if normalized == "" {
		return nil, fmt.Errorf("%w: verse normalizes to empty text", core.ErrInvalidRecord)
	}

	id := core.ID(row.ID)
	if id == "" && row.ChunkID > 0 {
		id = core.ID("v" + strconv.Itoa(row.ChunkID))
	}
	if id == "" {
		id = core.IDFromContent(verse)
	}

	return &core.Record{
		ID:          id,
		Verse:       verse,
		Annotation:  annotation,
		Poet:        strings.TrimSpace(row.Poet),
		Poem:        strings.TrimSpace(row.Poem),
		VerseNumber: row.VerseNumber,
		SourceBook:  strings.TrimSpace(row.Source.Book),
		Normalized:  normalized,
	}, nil
}

// splitAnnotated splits a combined text field into verse and annotation
// halves. The annotation half is empty when no marker is present.
func splitAnnotated(text string) [2]string {
	verse, annotation, found := strings.Cut(text, annotationMarker)
	if !found {
		return [2]string{strings.TrimSpace(text), ""}
	}
	return [2]string{strings.TrimSpace(verse), strings.TrimSpace(annotation)}
}
