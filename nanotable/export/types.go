// Package export writes dated snapshots of admin collections as a JSON
// bundle, a spreadsheet workbook with one sheet per collection, or a zip
// archive holding both.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Format names an export encoding
type Format string

const (
	JSON     Format = "json"
	Workbook Format = "xlsx"
	Archive  Format = "zip"
)

// Formats lists the supported encodings
func Formats() []Format { return []Format{JSON, Workbook, Archive} }

// ParseFormat accepts a format name case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want json, xlsx or zip)", name)
}

// Section is one named part of an export
type Section struct {
	// Key is the field name in the JSON bundle
	Key string

	// Sheet is the workbook tab; empty means Key
	Sheet string

	// Rows is a slice of records or a single document struct
	Rows any
}

func (s Section) sheet() string {
	if s.Sheet != "" {
		return s.Sheet
	}
	return s.Key
}

// Bundle is a complete export: the sections in order plus the moment the
// export was taken
type Bundle struct {
	// Prefix names the exporting feature, as in admin-settings
	Prefix   string
	Sections []Section
	Date     time.Time
}

// Filename returns <prefix>-export-YYYY-MM-DD.<format>
func (b Bundle) Filename(f Format) string {
	return fmt.Sprintf("%s-export-%s.%s", b.Prefix, b.Date.Format(time.DateOnly), f)
}
