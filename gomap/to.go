package gomap

import (
	"encoding"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/go-rich/ir"
)

// ToIR converts a Go value to an IR node. Structs become product values
// named by their Go type, with fields in declaration order.
func ToIR(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	return toIR(reflect.ValueOf(v), "")
}

func toIR(val reflect.Value, path string) (*ir.Node, error) {
	t := val.Type()
	if t.Kind() != reflect.Interface && t.Implements(textMarshalerType) {
		if t.Kind() == reflect.Pointer && val.IsNil() {
			return ir.Null(), nil
		}
		text, err := val.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return ir.FromString(string(text)), nil
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIR(val.Elem(), path)
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromNumber(strconv.FormatUint(u, 10)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Slice, reflect.Array:
		// a nil slice is an empty sequence, matching the shape of the type.
		vals := make([]*ir.Node, val.Len())
		for i := range vals {
			elem, err := toIR(val.Index(i), ir.IndexPath(path, i))
			if err != nil {
				return nil, err
			}
			vals[i] = elem
		}
		return ir.FromSlice(vals), nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &MarshalError{FieldPath: path, Message: "map key must be a string kind, got " + t.Key().String()}
		}
		m := make(map[string]*ir.Node, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			elem, err := toIR(iter.Value(), fieldPath(path, k))
			if err != nil {
				return nil, err
			}
			m[k] = elem
		}
		return ir.FromMap(m), nil

	case reflect.Struct:
		fields, err := StructFields(t)
		if err != nil {
			return nil, &MarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		kvs := make([]ir.KeyVal, len(fields))
		for i, f := range fields {
			elem, err := toIR(val.Field(f.Index), fieldPath(path, f.FieldName))
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: f.FieldName, Val: elem}
		}
		return ir.FromStruct(typeName(t), kvs), nil
	}
	return nil, &MarshalError{FieldPath: path, Message: "unsupported type " + t.String()}
}
