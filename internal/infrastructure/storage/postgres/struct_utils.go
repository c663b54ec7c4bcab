package postgres

import (
	"reflect"
	"sync"
)

// Column metadata derived from "db" tags is cached per type, so the
// reflection cost is paid once.
type fieldInfo struct {
	index int
	dbTag string
}

var typeCache sync.Map // map[reflect.Type][]fieldInfo

func fieldsOf(t reflect.Type) []fieldInfo {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			fields = append(fields, fieldInfo{index: i, dbTag: tag})
		}
	}

	typeCache.Store(t, fields)
	return fields
}

// ExtractDBColumns lists the column names of a model's "db" tags, in
// declaration order. Called once at repo construction time.
func ExtractDBColumns[T any]() []string {
	var zero T
	fields := fieldsOf(reflect.TypeOf(zero))
	cols := make([]string, 0, len(fields))
	for _, fi := range fields {
		cols = append(cols, fi.dbTag)
	}
	return cols
}

// StructToMap converts a model to a column map using its "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	fields := fieldsOf(rv.Type())
	res := make(map[string]any, len(fields))
	for _, fi := range fields {
		res[fi.dbTag] = rv.Field(fi.index).Interface()
	}
	return res
}
