package charges

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Writer writes Row records to a Parquet file configured for small output
// and fast analytical scans: Zstd(default) compression, page statistics on,
// dictionary-friendly page sizes. The synthetic datasets are small (tens of
// thousands of rows), so a single row group is expected.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[Row]
	count  int
}

// NewWriter creates a Parquet writer for charge rows at filename.
func NewWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[Row](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("chargedash", "1.0", ""),
	)

	return &Writer{file: file, writer: writer}, nil
}

// Write writes a batch of rows.
func (w *Writer) Write(rows []Row) (int, error) {
	n, err := w.writer.Write(rows)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the final row group and closes the file.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *Writer) Count() int {
	return w.count
}

// ReadFile reads every charge row from a Parquet file.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[Row](f)
	defer reader.Close()

	rows := make([]Row, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read parquet rows: %w", err)
	}
	return rows[:n], nil
}
