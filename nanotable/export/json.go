package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// WriteJSON writes the bundle as one object whose keys follow the section
// order, with exportDate last
func WriteJSON(w io.Writer, b Bundle) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for _, s := range b.Sections {
		if err := writeMember(&buf, s.Key, s.Rows); err != nil {
			return fmt.Errorf("failed to encode %s: %w", s.Key, err)
		}
		buf.WriteString(",\n")
	}
	if err := writeMember(&buf, "exportDate", b.Date.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	buf.WriteString("\n}\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.MarshalIndent(value, "  ", "  ")
	if err != nil {
		return err
	}
	buf.WriteString("  ")
	buf.Write(k)
	buf.WriteString(": ")
	buf.Write(v)
	return nil
}
