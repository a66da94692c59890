package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strings"

	"github.com/noodlewise/backend/internal/domain"
)

// ratingColumns is the fixed schema of the pseudo-SQL ratings dump. Every
// valid INSERT line carries exactly these six fields, in this order.
var ratingColumns = []string{"review_id", "brand", "variant", "style", "country", "stars"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimiterCandidates are tried in order when sniffing a delimited file.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// SourceLoader fetches raw blobs from the object store and parses them into
// tabular structures. Parse problems never escape as panics: a missing or
// malformed source yields an error the pipeline logs and handles.
type SourceLoader struct {
	store domain.ObjectStore
	debug bool
}

// NewSourceLoader creates a loader over the given object store.
func NewSourceLoader(store domain.ObjectStore) *SourceLoader {
	return &SourceLoader{store: store}
}

// SetDebug enables per-row debug logging.
func (l *SourceLoader) SetDebug(debug bool) {
	l.debug = debug
}

// LoadDelimited fetches and parses a delimited text source leniently: the
// byte-order marker is stripped, the field delimiter is auto-detected and
// column names are trimmed. Rows with a deviating field count are kept and
// padded/truncated against the header.
func (l *SourceLoader) LoadDelimited(ctx context.Context, key string) (*domain.Table, error) {
	data, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, key, err)
	}

	table, err := ParseDelimited(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, key, err)
	}

	if l.debug {
		log.Printf("[LOADER] %s: %d rows, columns %v", key, table.Len(), table.Columns)
	}
	return table, nil
}

// LoadRatingDump fetches and parses the pseudo-SQL ratings dump. Lines that
// do not tokenize to exactly six fields are skipped silently.
func (l *SourceLoader) LoadRatingDump(ctx context.Context, key string) (*domain.Table, error) {
	data, err := l.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, key, err)
	}

	table := ParseRatingDump(data)
	if l.debug {
		log.Printf("[LOADER] %s: %d valid rows", key, table.Len())
	}
	return table, nil
}

// ParseDelimited parses delimited text into a Table.
func ParseDelimited(data []byte) (*domain.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty source")
	}

	headerLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		headerLine = text[:idx]
	}
	delim := detectDelimiter(headerLine)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = strings.TrimSpace(name)
	}

	table := &domain.Table{Columns: columns}
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// detectDelimiter picks the candidate that occurs most often in the header
// line, defaulting to comma.
func detectDelimiter(header string) rune {
	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		count := strings.Count(header, string(cand))
		if count > bestCount {
			best = cand
			bestCount = count
		}
	}
	return best
}

// ParseRatingDump scans unstructured text for INSERT statements and
// tokenizes each statement's value list. One logical record per matching
// line; malformed or partial lines are dropped, not escalated.
func ParseRatingDump(data []byte) *domain.Table {
	table := &domain.Table{Columns: ratingColumns}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "INSERT INTO") || !strings.Contains(line, "VALUES") {
			continue
		}

		start := strings.Index(line, "VALUES (")
		end := strings.LastIndex(line, ");")
		if start < 0 || end < 0 || end <= start+8 {
			continue
		}

		fields := splitInsertValues(line[start+8 : end])
		if len(fields) != len(ratingColumns) {
			continue
		}

		row := make(map[string]string, len(ratingColumns))
		for i, col := range ratingColumns {
			row[col] = fields[i]
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// splitInsertValues tokenizes a SQL value list: comma-separated fields,
// single-quote delimited strings that may contain commas, '' as an escaped
// quote inside a quoted field, and the bare literal NULL mapped to absent.
func splitInsertValues(raw string) []string {
	var fields []string
	var buf strings.Builder
	inQuote := false
	quoted := false

	flush := func() {
		value := buf.String()
		if !quoted {
			value = strings.TrimSpace(value)
			if value == "NULL" {
				value = ""
			}
		}
		fields = append(fields, value)
		buf.Reset()
		quoted = false
	}

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\'':
			if inQuote && i+1 < len(runes) && runes[i+1] == '\'' {
				buf.WriteRune('\'')
				i++
				continue
			}
			inQuote = !inQuote
			if inQuote {
				quoted = true
			}
		case c == ',' && !inQuote:
			flush()
		default:
			if !inQuote && !quoted && buf.Len() == 0 && (c == ' ' || c == '\t') {
				continue // skip space after the separator
			}
			buf.WriteRune(c)
		}
	}
	flush()
	return fields
}
