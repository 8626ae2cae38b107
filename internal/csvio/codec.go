package csvio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed CSV record keyed by lowercased, trimmed column name.
// Values are trimmed.
type Row map[string]string

// Parse reads delimited text into column-keyed rows. The first line is the
// header; header names are lowercased and trimmed. Blank lines are skipped.
// Records shorter than the header leave the missing columns absent; surplus
// fields are dropped.
func Parse(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var headers []string
	var rows []Row

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := splitLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}

		if headers == nil {
			headers = make([]string, 0, len(fields))
			for _, h := range fields {
				headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
			}
			continue
		}

		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse csv: read input: %w", err)
	}
	if headers == nil {
		return nil, fmt.Errorf("parse csv: empty input")
	}

	return rows, nil
}

// Write serializes rows in the given header order. Fields containing a comma,
// quote, or newline are quoted with quotes doubled. Columns absent from a row
// serialize as empty fields.
func Write(w io.Writer, headers []string, rows []Row) error {
	bw := bufio.NewWriter(w)

	if err := writeRecord(bw, headers); err != nil {
		return err
	}

	fields := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			fields[i] = row[h]
		}
		if err := writeRecord(bw, fields); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quote(f string) string {
	if !strings.ContainsAny(f, ",\"\n") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

// splitLine splits one CSV record honoring quoted fields with doubled quotes.
func splitLine(line string) ([]string, error) {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					b.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			b.WriteByte(c)
		case c == '"':
			inQuotes = true
		case c == ',':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote in record %q", line)
	}
	fields = append(fields, b.String())

	return fields, nil
}
