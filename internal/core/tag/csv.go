// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads (name, color[, slug]) rows. A UTF-8 BOM is ignored.
//
// When skipHeader is set the first record is discarded.
func ParseCSV(reader io.Reader, skipHeader bool) ([]Tag, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	tags := make([]Tag, 0)
	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tag csv: %w", err)
		}

		if line == 1 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			if skipHeader {
				continue
			}
		}

		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("tag csv: line %d: expected 2 or 3 fields, got %d", line, len(record))
		}

		tag := Tag{Name: record[0], Color: record[1]}
		if len(record) == 3 {
			tag.Slug = record[2]
		}
		tags = append(tags, tag)
	}

	return tags, nil
}
