package value

import (
	"bytes"
	"maps"
	"slices"
)

// Object is an immutable JSON object. Members keep the order in which they
// were first added; that order is only used when encoding.
type Object struct {
	keys   []string
	fields map[string]Value
}

// Member is a key/value pair used to build objects.
type Member struct {
	Key   string
	Value Value
}

// NewObject returns an object with the given members. A repeated key keeps
// its first position and its last value.
func NewObject(members ...Member) Object {
	o := Object{
		keys:   make([]string, 0, len(members)),
		fields: make(map[string]Value, len(members)),
	}
	for _, m := range members {
		if _, ok := o.fields[m.Key]; !ok {
			o.keys = append(o.keys, m.Key)
		}
		o.fields[m.Key] = orNull(m.Value)
	}
	return o
}

func (Object) Kind() Kind { return KindObject }
func (Object) isValue()   {}

func (o Object) String() string {
	data, _ := o.MarshalJSON()
	return string(data)
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		data, err := o.fields[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Len returns the number of members.
func (o Object) Len() int { return len(o.keys) }

// Keys returns the member names in order.
func (o Object) Keys() []string { return slices.Clone(o.keys) }

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// Has reports whether key is a member.
func (o Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

// With returns a new object where key maps to v. An existing member keeps
// its position.
func (o Object) With(key string, v Value) Object {
	res := Object{
		keys:   o.keys,
		fields: maps.Clone(o.fields),
	}
	if res.fields == nil {
		res.fields = make(map[string]Value, 1)
	}
	if _, ok := o.fields[key]; !ok {
		res.keys = make([]string, 0, len(o.keys)+1)
		res.keys = append(res.keys, o.keys...)
		res.keys = append(res.keys, key)
	}
	res.fields[key] = orNull(v)
	return res
}

// Without returns a new object without key. The second result is false if
// key was not a member, in which case o is returned unchanged.
func (o Object) Without(key string) (Object, bool) {
	if _, ok := o.fields[key]; !ok {
		return o, false
	}
	res := Object{
		keys:   make([]string, 0, len(o.keys)-1),
		fields: maps.Clone(o.fields),
	}
	for _, k := range o.keys {
		if k != key {
			res.keys = append(res.keys, k)
		}
	}
	delete(res.fields, key)
	return res, true
}

// Range calls fn for each member in order until fn returns false.
func (o Object) Range(fn func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.fields[k]) {
			return
		}
	}
}
