package export

import (
	"fmt"
	"reflect"
	"strings"
)

// Table flattens rows into a header of JSON field names and one line of
// cell values per record. rows is a slice of structs (or pointers to
// structs) or a single struct. Cells hold strings, bools and numbers as
// they are; string slices are joined with ", ".
func Table(rows any) ([]string, [][]any, error) {
	v := reflect.ValueOf(rows)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, nil
		}
		v = v.Elem()
	}

	var elems []reflect.Value
	var elemType reflect.Type
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		elemType = v.Type().Elem()
		for i := 0; i < v.Len(); i++ {
			elems = append(elems, v.Index(i))
		}
	case reflect.Struct:
		elemType = v.Type()
		elems = []reflect.Value{v}
	default:
		return nil, nil, fmt.Errorf("cannot tabulate %T", rows)
	}
	if elemType.Kind() == reflect.Pointer {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("cannot tabulate rows of %s", elemType)
	}

	fields := columns(elemType)
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.name
	}

	out := make([][]any, 0, len(elems))
	for _, e := range elems {
		if e.Kind() == reflect.Pointer {
			if e.IsNil() {
				continue
			}
			e = e.Elem()
		}
		row := make([]any, len(fields))
		for i, f := range fields {
			row[i] = cell(e.Field(f.index))
		}
		out = append(out, row)
	}
	return header, out, nil
}

type column struct {
	name  string
	index int
}

func columns(t reflect.Type) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

func cell(v reflect.Value) any {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(cell(v.Index(i)))
		}
		return strings.Join(parts, ", ")
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return ""
		}
		return cell(v.Elem())
	default:
		return fmt.Sprint(v.Interface())
	}
}
