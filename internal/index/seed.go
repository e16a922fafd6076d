package index

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// seedRecord is one line of a JSONL incidents file, e.g.
//
//	{"page_content": "...", "metadata": {"source": "...", "tags": ["bias"]}}
type seedRecord struct {
	ID          string                 `json:"id"`
	PageContent string                 `json:"page_content"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// SeedFromJSONL ingests incidents from a JSONL file into the store and
// returns the number of documents added. Metadata is sanitized to scalars
// before storage; records without an id get a fresh UUID. A record that
// cannot be parsed or has no content aborts the seed with
// ErrMalformedRecord.
func SeedFromJSONL(ctx context.Context, store Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var docs []Document

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec seedRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, lineNo, err)
		}
		if rec.PageContent == "" {
			return 0, fmt.Errorf("%w: line %d: missing page_content", ErrMalformedRecord, lineNo)
		}

		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}

		docs = append(docs, Document{
			ID:       id,
			Content:  rec.PageContent,
			Metadata: SanitizeMetadata(rec.Metadata),
		})
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	if err := store.Add(ctx, docs); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}

	return len(docs), nil
}
