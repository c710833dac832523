// Package translate keeps the name translation cache and feeds untranslated
// card names to an external translator in batches.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"unicode"

	"sohio.net/cardmarket/internal/carddb"
)

// Cache maps an original card name to its translation.
type Cache map[string]string

// LoadCache reads the cache at path. A missing or malformed file is an
// empty cache.
func LoadCache(path string) (Cache, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Cache{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading translation cache: %w", err)
	}

	cache := Cache{}
	if err := json.Unmarshal(contents, &cache); err != nil {
		slog.Warn("ignoring malformed translation cache", "path", path, "err", err)
		return Cache{}, nil
	}
	return cache, nil
}

func (c Cache) Save(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("error encoding translation cache: %w", err)
	}
	return carddb.WriteAtomic(path, buf.Bytes())
}

func needsTranslation(name string) bool {
	for _, r := range name {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// Pending returns the distinct non-ASCII base names missing from cache,
// sorted.
func Pending(records []carddb.Record, cache Cache) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, r := range records {
		if r.BaseName == "" || !needsTranslation(r.BaseName) {
			continue
		}
		if _, ok := cache[r.BaseName]; ok {
			continue
		}
		if _, ok := seen[r.BaseName]; ok {
			continue
		}
		seen[r.BaseName] = struct{}{}
		names = append(names, r.BaseName)
	}
	slices.Sort(names)
	return names
}

// Apply rewrites base names that have a cached translation and returns how
// many records changed. Codes and ids are left alone.
func Apply(records []carddb.Record, cache Cache) int {
	n := 0
	for i := range records {
		translated, ok := cache[records[i].BaseName]
		if !ok || translated == "" || translated == records[i].BaseName {
			continue
		}
		records[i].BaseName = translated
		n++
	}
	return n
}

type Translator interface {
	// Translate returns one translation per name, in order.
	Translate(ctx context.Context, names []string) ([]string, error)
}

// Run translates names batch by batch, adding results to cache and calling
// flush after every successful batch so an interrupted run keeps its
// progress. A failed batch is logged and skipped. It returns the number of
// names translated.
func Run(ctx context.Context, t Translator, cache Cache, names []string, batchSize int, flush func(Cache) error) (int, error) {
	if batchSize <= 0 {
		batchSize = 50
	}

	translated := 0
	for batch := range slices.Chunk(names, batchSize) {
		if err := ctx.Err(); err != nil {
			return translated, err
		}

		out, err := t.Translate(ctx, batch)
		if err != nil {
			slog.WarnContext(ctx, "translation batch failed", "size", len(batch), "first", batch[0], "err", err)
			continue
		}
		if len(out) != len(batch) {
			slog.WarnContext(ctx, "translation batch size mismatch", "sent", len(batch), "received", len(out))
			continue
		}

		for i, name := range batch {
			cache[name] = out[i]
		}
		translated += len(batch)

		if err := flush(cache); err != nil {
			return translated, fmt.Errorf("error flushing translation cache: %w", err)
		}
		slog.InfoContext(ctx, "translated batch", "done", translated, "total", len(names))
	}
	return translated, nil
}
