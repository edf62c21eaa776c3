package main

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// writeSnapshot exports the harmonized record set as a Parquet file so the
// merged, coerced data can be queried analytically without re-running the
// harmonizer. Nil charge/lat/lon map to Parquet nulls.
func writeSnapshot(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	writer := parquet.NewGenericWriter[Record](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.PageBufferSize(8*1024),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("chargedash", "1.0", ""),
	)

	if _, err := writer.Write(records); err != nil {
		file.Close()
		return fmt.Errorf("write snapshot rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("close snapshot writer: %w", err)
	}
	return file.Close()
}
