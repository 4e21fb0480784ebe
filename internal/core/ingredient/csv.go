// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingredient

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads two-column (name, measurement_unit) rows. A UTF-8 BOM is
// ignored and, when skipHeader is set, the first record is discarded.
func ParseCSV(reader io.Reader, skipHeader bool) ([]Ingredient, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = 2
	csvReader.ReuseRecord = true

	ingredients := make([]Ingredient, 0, 256)
	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingredient csv: %w", err)
		}

		if line == 1 && skipHeader {
			continue
		}
		if line == 1 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}

		ingredients = append(ingredients, Ingredient{Name: record[0], MeasurementUnit: record[1]})
	}

	return ingredients, nil
}
