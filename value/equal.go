package value

// Equal reports whether a and b are structurally equal. Numbers are compared
// by value, object members irrespective of order. A nil Value equals Null.
func Equal(a, b Value) bool {
	a, b = orNull(a), orNull(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return numbersEqual(av, b.(Number))
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if av.Len() != bv.Len() {
			return false
		}
		for i := range av.elems {
			if !Equal(av.elems[i], bv.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		bv := b.(Object)
		if av.Len() != bv.Len() {
			return false
		}
		for k, va := range av.fields {
			vb, ok := bv.fields[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}
