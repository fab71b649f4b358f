// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package importer parses, validates and imports bulk event uploads in
// CSV form.
package importer

import "strings"

// Record is one parsed CSV data row, keyed by the file's header names.
type Record map[string]string

// Expected header columns of an event upload.
var Columns = []string{
	"title", "description", "organizer", "event_date",
	"event_time", "location", "category", "external_link",
}

// Parse splits CSV text into records. The format is deliberately lenient:
// blank lines are skipped, quotes only matter for protecting commas, and a
// short row leaves the trailing columns empty. Standard library csv is too
// strict here, it rejects bare quotes in the middle of a field which these
// uploads routinely contain.
func Parse(csvText string) []Record {
	var lines []string
	for _, line := range strings.Split(csvText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var headers []string
	for _, h := range strings.Split(lines[0], ",") {
		headers = append(headers, strings.TrimSpace(strings.ReplaceAll(h, `"`, "")))
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		record := make(Record, len(headers))
		for i, header := range headers {
			if i < len(values) {
				record[header] = values[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// splitLine splits one CSV line on commas, treating quotes as toggles that
// protect embedded commas. The quote characters themselves are dropped.
func splitLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}
