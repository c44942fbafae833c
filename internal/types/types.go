package types

// VarType is the closed set of MiniPy value types.
type VarType uint8

const (
	// None marks an absent type slot (scalar element/key/value positions,
	// or a function without a declared return type).
	None VarType = iota
	// Int is the signed integer type, lowered to C int.
	Int
	// Float is the floating-point type, lowered to C float.
	Float
	// String is the heap-backed string type, lowered to char*.
	String
	// Bool is the boolean type, lowered to C int.
	Bool
	// List is the homogeneous growable sequence type.
	List
	// Tuple is the homogeneous fixed sequence type.
	Tuple
	// Dict is the string-keyed map type.
	Dict
)

var varTypeNames = [...]string{
	None:   "none",
	Int:    "int",
	Float:  "float",
	String: "string",
	Bool:   "bool",
	List:   "list",
	Tuple:  "tuple",
	Dict:   "dict",
}

func (v VarType) String() string {
	if int(v) < len(varTypeNames) {
		return varTypeNames[v]
	}
	return "unknown"
}

// IsScalar reports whether the type has no element/key/value slots.
func (v VarType) IsScalar() bool {
	switch v {
	case Int, Float, String, Bool:
		return true
	default:
		return false
	}
}

// IsContainer reports whether the type carries element or key/value slots.
func (v VarType) IsContainer() bool {
	switch v {
	case List, Tuple, Dict:
		return true
	default:
		return false
	}
}

// IsHeapBacked reports whether a local of this type owns heap memory the
// generated C must free.
func (v VarType) IsHeapBacked() bool {
	switch v {
	case String, List, Tuple, Dict:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether arithmetic operators accept the type.
func (v VarType) IsNumeric() bool {
	return v == Int || v == Float
}

// Collection describes a possibly parameterized variable type.
// Invariants:
//   - Base scalar: Elem, Key, Value are all None.
//   - Base List/Tuple: Elem is set, Key and Value are None.
//   - Base Dict: Key is String (enforced at parse time), Value is set.
type Collection struct {
	Base  VarType
	Elem  VarType
	Key   VarType
	Value VarType
}

// Scalar builds a Collection for a non-container type.
func Scalar(base VarType) Collection {
	return Collection{Base: base}
}

// ListOf builds a list type with the given element type.
func ListOf(elem VarType) Collection {
	return Collection{Base: List, Elem: elem}
}

// TupleOf builds a tuple type with the given element type.
func TupleOf(elem VarType) Collection {
	return Collection{Base: Tuple, Elem: elem}
}

// DictOf builds a string-keyed dict type with the given value type.
func DictOf(value VarType) Collection {
	return Collection{Base: Dict, Key: String, Value: value}
}

func (c Collection) String() string {
	switch c.Base {
	case List, Tuple:
		return c.Base.String() + "[" + c.Elem.String() + "]"
	case Dict:
		return "dict[" + c.Key.String() + ", " + c.Value.String() + "]"
	default:
		return c.Base.String()
	}
}

// Equal reports exact type equality, including element/key/value slots.
func (c Collection) Equal(other Collection) bool {
	return c == other
}
