package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// TableFormatter renders data as aligned columns.
//
// A struct becomes a FIELD/VALUE listing, a slice of structs one row per
// element, and a map a sorted KEY/VALUE listing. Struct fields tagged
// `table:"-"` are skipped; `table:"wide"` fields appear only in wide mode.
// Column names come from the json tag.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format renders data. Anything that is not a struct, slice or map is
// printed with fmt.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	switch t := data.(type) {
	case *Table:
		return t.render(w, f.NoHeaders)
	case Table:
		return t.render(w, f.NoHeaders)
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, t.String())
		return err
	}

	v := indirect(reflect.ValueOf(data))
	var table *Table
	switch v.Kind() {
	case reflect.Struct:
		table = f.fieldTable(v)
	case reflect.Slice, reflect.Array:
		table = f.listTable(v)
	case reflect.Map:
		table = mapTable(v)
	default:
		_, err := fmt.Fprintln(w, cell(v))
		return err
	}
	return table.render(w, f.NoHeaders)
}

type column struct {
	index int
	name  string
}

func (f *TableFormatter) columns(t reflect.Type) []column {
	var cols []column
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("table")
		if tag == "-" || (tag == "wide" && !f.Wide) {
			continue
		}
		cols = append(cols, column{index: i, name: fieldName(field)})
	}
	return cols
}

func (f *TableFormatter) fieldTable(v reflect.Value) *Table {
	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	for _, col := range f.columns(v.Type()) {
		t.AddRow(col.name, cell(v.Field(col.index)))
	}
	return t
}

func (f *TableFormatter) listTable(v reflect.Value) *Table {
	t := &Table{}
	if v.Len() == 0 {
		return t
	}

	elemType := v.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		t.Headers = []string{"VALUE"}
		for i := range v.Len() {
			t.AddRow(cell(v.Index(i)))
		}
		return t
	}

	cols := f.columns(elemType)
	for _, col := range cols {
		t.Headers = append(t.Headers, strings.ToUpper(col.name))
	}
	for i := range v.Len() {
		elem := indirect(v.Index(i))
		row := make([]string, len(cols))
		for j, col := range cols {
			if elem.IsValid() {
				row[j] = cell(elem.Field(col.index))
			}
		}
		t.AddRow(row...)
	}
	return t
}

func mapTable(v reflect.Value) *Table {
	t := &Table{Headers: []string{"KEY", "VALUE"}}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return cell(keys[i]) < cell(keys[j])
	})
	for _, k := range keys {
		t.AddRow(cell(k), cell(v.MapIndex(k)))
	}
	return t
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// cell renders a single value. Empty values print as "-".
func cell(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return "-"
	}

	switch v.Type() {
	case timeType:
		ts := v.Interface().(time.Time)
		if ts.IsZero() {
			return "-"
		}
		return ts.Format("2006-01-02 15:04:05.000 MST")
	case durationType:
		return v.Interface().(time.Duration).Round(time.Microsecond).String()
	}

	switch v.Kind() {
	case reflect.String:
		if v.Len() == 0 {
			return "-"
		}
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 2, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice, reflect.Array, reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("(%d)", v.Len())
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Table is pre-built tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) render(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
