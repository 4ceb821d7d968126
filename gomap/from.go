package gomap

import (
	"encoding"
	"reflect"
	"strconv"

	"github.com/signadot/go-rich/ir"
)

// FromIR converts an IR node to a Go value.
// v must be a pointer to the target type.
func FromIR(node *ir.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return fromIR(node, val.Elem(), "")
}

func fieldPath(prefix, field string) string {
	return ir.FieldPath(prefix, field)
}

func typeError(path string, t reflect.Type, node *ir.Node) error {
	return &TypeError{FieldPath: path, Expected: t.String(), Actual: node.Type.String()}
}

func fromIR(node *ir.Node, val reflect.Value, path string) error {
	if node == nil {
		node = ir.Null()
	}
	t := val.Type()
	if t.Kind() != reflect.Pointer && isText(t) {
		if node.Type != ir.StringType {
			return typeError(path, t, node)
		}
		u := val.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(node.String)); err != nil {
			return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		if node.Type == ir.NullType {
			val.SetZero()
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(t.Elem()))
		}
		return fromIR(node, val.Elem(), path)

	case reflect.Interface:
		if t.NumMethod() != 0 {
			return &UnmarshalError{FieldPath: path, Message: "cannot unmarshal into " + t.String()}
		}
		x := toAny(node)
		if x == nil {
			val.SetZero()
			return nil
		}
		val.Set(reflect.ValueOf(x))
		return nil

	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeError(path, t, node)
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Type != ir.NumberType || node.Int64 == nil {
			return typeError(path, t, node)
		}
		if val.OverflowInt(*node.Int64) {
			return &UnmarshalError{FieldPath: path, Message: strconv.FormatInt(*node.Int64, 10) + " overflows " + t.String()}
		}
		val.SetInt(*node.Int64)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := uintOf(node)
		if err != nil {
			return typeError(path, t, node)
		}
		if val.OverflowUint(u) {
			return &UnmarshalError{FieldPath: path, Message: strconv.FormatUint(u, 10) + " overflows " + t.String()}
		}
		val.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		if node.Type != ir.NumberType {
			return typeError(path, t, node)
		}
		switch {
		case node.Float64 != nil:
			val.SetFloat(*node.Float64)
		case node.Int64 != nil:
			val.SetFloat(float64(*node.Int64))
		default:
			f, err := strconv.ParseFloat(node.Number, 64)
			if err != nil {
				return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
			}
			val.SetFloat(f)
		}
		return nil

	case reflect.String:
		if node.Type != ir.StringType {
			return typeError(path, t, node)
		}
		val.SetString(node.String)
		return nil

	case reflect.Slice:
		if node.Type == ir.NullType {
			val.SetZero()
			return nil
		}
		if node.Type != ir.ArrayType {
			return typeError(path, t, node)
		}
		res := reflect.MakeSlice(t, len(node.Values), len(node.Values))
		for i, elem := range node.Values {
			if err := fromIR(elem, res.Index(i), ir.IndexPath(path, i)); err != nil {
				return err
			}
		}
		val.Set(res)
		return nil

	case reflect.Array:
		if node.Type != ir.ArrayType {
			return typeError(path, t, node)
		}
		if len(node.Values) != t.Len() {
			return &UnmarshalError{FieldPath: path, Message: "expected " + strconv.Itoa(t.Len()) + " elements, got " + strconv.Itoa(len(node.Values))}
		}
		for i, elem := range node.Values {
			if err := fromIR(elem, val.Index(i), ir.IndexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &UnmarshalError{FieldPath: path, Message: "map key must be a string kind, got " + t.Key().String()}
		}
		if node.Type == ir.NullType {
			val.SetZero()
			return nil
		}
		if node.Type != ir.ObjectType && node.Type != ir.StructType {
			return typeError(path, t, node)
		}
		res := reflect.MakeMapWithSize(t, len(node.Fields))
		for i, f := range node.Fields {
			elem := reflect.New(t.Elem()).Elem()
			if err := fromIR(node.Values[i], elem, fieldPath(path, f.String)); err != nil {
				return err
			}
			res.SetMapIndex(reflect.ValueOf(f.String).Convert(t.Key()), elem)
		}
		val.Set(res)
		return nil

	case reflect.Struct:
		if node.Type != ir.ObjectType && node.Type != ir.StructType {
			return typeError(path, t, node)
		}
		fields, err := StructFields(t)
		if err != nil {
			return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
		}
		for _, f := range fields {
			child := ir.Get(node, f.FieldName)
			if child == nil {
				continue
			}
			if err := fromIR(child, val.Field(f.Index), fieldPath(path, f.FieldName)); err != nil {
				return err
			}
		}
		return nil
	}
	return &UnmarshalError{FieldPath: path, Message: "unsupported type " + t.String()}
}

func uintOf(node *ir.Node) (uint64, error) {
	if node.Type != ir.NumberType {
		return 0, strconv.ErrSyntax
	}
	if node.Int64 != nil {
		if *node.Int64 < 0 {
			return 0, strconv.ErrRange
		}
		return uint64(*node.Int64), nil
	}
	return strconv.ParseUint(node.Number, 10, 64)
}

// toAny converts node to nil, bool, int64, float64, string, []any or
// map[string]any. A unit variant becomes its name and any other variant a
// single entry map from its name to its payload.
func toAny(node *ir.Node) any {
	switch node.Type {
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64
		case node.Float64 != nil:
			return *node.Float64
		}
		return node.Number
	case ir.StringType:
		return node.String
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toAny(v)
		}
		return res
	case ir.ObjectType, ir.StructType:
		return fieldsToAny(node)
	case ir.UnionType:
		switch {
		case node.Named():
			return map[string]any{node.Variant: fieldsToAny(node)}
		case len(node.Values) == 0:
			return node.Variant
		case len(node.Values) == 1:
			return map[string]any{node.Variant: toAny(node.Values[0])}
		}
		vs := make([]any, len(node.Values))
		for i, v := range node.Values {
			vs[i] = toAny(v)
		}
		return map[string]any{node.Variant: vs}
	}
	return nil
}

func fieldsToAny(node *ir.Node) map[string]any {
	res := make(map[string]any, len(node.Fields))
	for i, f := range node.Fields {
		res[f.String] = toAny(node.Values[i])
	}
	return res
}
