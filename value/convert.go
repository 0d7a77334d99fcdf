package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// FromAny converts the generic tree produced by encoding/json (nil, bool,
// float64, json.Number, string, []any, map[string]any) into a Value. Go
// integer and float types are accepted as numbers. Any other type is
// round-tripped through encoding/json.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return ParseNumber(string(t))
	case float64:
		return Float(t)
	case float32:
		return Float(float64(t))
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint, uint8, uint16, uint32, uint64:
		return Number(fmt.Sprint(t)), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = v
		}
		return Array{elems: elems}, nil
	case map[string]any:
		// Go maps are unordered; sort keys for a stable encoding.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: v}
		}
		return NewObject(members...), nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null{}, nil
	}
	data, err := json.Marshal(x)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Interface converts v into the generic tree used by encoding/json. Numbers
// become json.Number so no precision is lost.
func Interface(v Value) any {
	switch t := orNull(v).(type) {
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t)
	case String:
		return string(t)
	case Array:
		res := make([]any, len(t.elems))
		for i, e := range t.elems {
			res[i] = Interface(e)
		}
		return res
	case Object:
		res := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			res[k] = Interface(t.fields[k])
		}
		return res
	}
	return nil
}
