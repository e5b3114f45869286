package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// WriteArchive writes a zip holding the JSON bundle and the workbook, both
// named after the bundle and stamped with its date
func WriteArchive(w io.Writer, b Bundle) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close zip writer: %w", cerr)
		}
	}()

	for _, f := range []Format{JSON, Workbook} {
		if err := addToZip(zw, b, f); err != nil {
			return err
		}
	}
	return nil
}

func addToZip(zw *zip.Writer, b Bundle, f Format) error {
	var buf bytes.Buffer
	if err := Write(&buf, b, f); err != nil {
		return err
	}

	header := &zip.FileHeader{
		Name:     b.Filename(f),
		Method:   zip.Deflate,
		Modified: b.Date,
	}
	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", header.Name, err)
	}
	if _, err := writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", header.Name, err)
	}
	return nil
}
