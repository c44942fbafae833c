package types

// CType returns the C declaration type the emitter uses for the base type.
func (v VarType) CType() string {
	switch v {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "char*"
	case Bool:
		return "int"
	case List:
		return listStructName(None) + "*"
	case Tuple:
		return tupleStructName(None) + "*"
	case Dict:
		return dictStructName(None) + "*"
	default:
		return "void"
	}
}

// CType returns the C declaration type for the full collection, e.g.
// ListInt* for list[int] or DictStringFloat* for dict[string, float].
func (c Collection) CType() string {
	switch c.Base {
	case List:
		return listStructName(c.Elem) + "*"
	case Tuple:
		return tupleStructName(c.Elem) + "*"
	case Dict:
		return dictStructName(c.Value) + "*"
	default:
		return c.Base.CType()
	}
}

// HelperHeader returns the runtime helper header a declaration of this type
// requires, or "" when only common.h is needed.
func (c Collection) HelperHeader() string {
	switch c.Base {
	case List:
		return "list_" + c.Elem.String() + ".h"
	case Tuple:
		return "tuple_" + c.Elem.String() + ".h"
	case Dict:
		return "dict_string_" + c.Value.String() + ".h"
	case String:
		return "string_utils.h"
	default:
		return ""
	}
}

// camel возвращает имя типа с заглавной буквы для имён C-структур.
func camel(v VarType) string {
	switch v {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	default:
		return ""
	}
}

func listStructName(elem VarType) string {
	return "List" + camel(elem)
}

func tupleStructName(elem VarType) string {
	return "Tuple" + camel(elem)
}

func dictStructName(value VarType) string {
	return "DictString" + camel(value)
}

// HelperSuffix returns the lowercase type suffix used in runtime helper
// function names, e.g. free_list_int or free_dict_string_float.
func (c Collection) HelperSuffix() string {
	switch c.Base {
	case List:
		return "list_" + c.Elem.String()
	case Tuple:
		return "tuple_" + c.Elem.String()
	case Dict:
		return "dict_string_" + c.Value.String()
	default:
		return c.Base.String()
	}
}
