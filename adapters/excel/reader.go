package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dfsummary/adapters/datareadiness/coercer"
	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader reads a CSV or XLSX file into a typed dataset
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a reader for the file at filePath. The file type is
// taken from the extension.
func NewDataReader(filePath string, config ReaderConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		coercer:  coercer.NewTypeCoercer(config.Coercion),
		logger:   logger,
	}
}

// Name is the file name without its extension
func (r *DataReader) Name() string {
	base := filepath.Base(r.filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load implements ports.DatasetSource
func (r *DataReader) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return r.ToDataset(raw)
}

// ReadData reads the header and data rows as raw cell text
func (r *DataReader) ReadData() (*RawTable, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s: %w", strings.ToUpper(r.fileType), r.filePath, core.ErrDatasetNotFound)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedSource, r.fileType)
	}
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData() (*RawTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file %s has no sheets", r.filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	r.logger.Debug("[DataReader] sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("Excel file must have at least a header row")
	}
	return r.processRows(rows)
}

func (r *DataReader) readCSVData() (*RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file must have at least a header row")
	}
	return r.processRows(rows)
}

// processRows splits off the header and pads short rows with empty cells.
// Excel drops trailing empty cells, so short rows are normal there.
func (r *DataReader) processRows(rows [][]string) (*RawTable, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := 0; j < len(row) && j < len(headers); j++ {
			cells[j] = strings.TrimSpace(row[j])
		}
		data = append(data, cells)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(data))

	return &RawTable{Headers: headers, Rows: data}, nil
}

// ToDataset infers each column's type and builds the dataset
func (r *DataReader) ToDataset(raw *RawTable) (*dataset.Dataset, error) {
	cols := make([]*dataset.Column, len(raw.Headers))
	for j, header := range raw.Headers {
		cells := make([]string, len(raw.Rows))
		for i, row := range raw.Rows {
			cells[i] = row[j]
		}
		cols[j] = r.coercer.InferColumn(header, cells)
		r.logger.Trace("[DataReader] column %s typed as %s", header, cols[j].Type)
	}
	ds, err := dataset.New(r.Name(), cols...)
	if err != nil {
		return nil, fmt.Errorf("build dataset from %s: %w", r.filePath, err)
	}
	return ds, nil
}
