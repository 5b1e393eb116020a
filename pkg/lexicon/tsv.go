package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// ImportTSV loads tab-separated lexicon entries into the store and returns
// the number of entries imported. Each line is "surface<TAB>lemma<TAB>tag";
// blank lines and lines starting with '#' are skipped.
func ImportTSV(ctx context.Context, store Store, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	imported := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return imported, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", lineNo, len(fields))
		}

		entry := Entry{
			Surface: strings.TrimSpace(fields[0]),
			Lemma:   strings.TrimSpace(fields[1]),
			Tag:     strings.TrimSpace(fields[2]),
		}
		if entry.Surface == "" {
			return imported, fmt.Errorf("line %d: empty surface form", lineNo)
		}

		if err := store.Put(ctx, entry); err != nil {
			return imported, fmt.Errorf("line %d: %w", lineNo, err)
		}
		imported++
	}

	if err := scanner.Err(); err != nil {
		return imported, err
	}
	return imported, nil
}
