// Copyright (c) 2026 Foodgram. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shopping

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/taibuivan/foodgram/internal/platform/constants"
	"github.com/taibuivan/foodgram/internal/platform/validate"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// utf8BOM lets spreadsheet applications detect the CSV encoding.
const utf8BOM = "\ufeff"

// csvHeader is the first row of every CSV export.
var csvHeader = []string{"Ingredient", "unit", "amount"}

// Exporter serializes a shopping list.
type Exporter interface {
	Format() string
	Filename() string
	ContentType() string
	Write(writer io.Writer, items []Item) error
}

// ExporterFor returns the exporter of format. An empty format is CSV.
func ExporterFor(format string) (Exporter, error) {
	if format == "" {
		format = FormatCSV
	}
	if err := (&validate.Validator{}).OneOf("format", format, FormatCSV, FormatJSON).Err(); err != nil {
		return nil, err
	}

	if format == FormatJSON {
		return JSONExporter{}, nil
	}
	return CSVExporter{}, nil
}

// Render writes items with exporter into memory.
func Render(exporter Exporter, items []Item) ([]byte, error) {
	var buffer bytes.Buffer
	if err := exporter.Write(&buffer, items); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// CSVExporter writes a BOM-prefixed UTF-8 CSV with a header row.
type CSVExporter struct{}

// Format returns [FormatCSV].
func (CSVExporter) Format() string { return FormatCSV }

// Filename is the attachment name sent in Content-Disposition.
func (CSVExporter) Filename() string { return "shopping_list.csv" }

// ContentType returns the CSV media type.
func (CSVExporter) ContentType() string { return constants.ContentTypeCSV }

// Write emits the BOM, the header row and one record per item.
func (CSVExporter) Write(writer io.Writer, items []Item) error {
	if _, err := io.WriteString(writer, utf8BOM); err != nil {
		return err
	}

	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{item.Name, item.MeasurementUnit, strconv.FormatInt(item.TotalAmount, 10)}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// JSONExporter writes {"items": [...]}.
type JSONExporter struct{}

// Format returns [FormatJSON].
func (JSONExporter) Format() string { return FormatJSON }

// Filename is the attachment name sent in Content-Disposition.
func (JSONExporter) Filename() string { return "shopping_list.json" }

// ContentType returns the JSON media type.
func (JSONExporter) ContentType() string { return constants.ContentTypeJSON }

// Write encodes items under an "items" key. A nil slice is written as [].
func (JSONExporter) Write(writer io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return json.NewEncoder(writer).Encode(struct {
		Items []Item `json:"items"`
	}{Items: items})
}
