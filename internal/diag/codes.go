package diag

import (
	"fmt"
)

// Code identifies a diagnostic within its phase space:
// 1000 lexical, 2000 syntax, 3000 semantic, 4000 io, 5000 toolchain.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexBadNumber          Code = 1002
	LexInconsistentIndent Code = 1003
	LexUnterminatedString Code = 1004
	LexUnterminatedFString Code = 1005

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectColon        Code = 2002
	SynExpectNewline      Code = 2003
	SynExpectIndent       Code = 2004
	SynExpectDedent       Code = 2005
	SynExpectIdentifier   Code = 2006
	SynExpectType         Code = 2007
	SynExpectExpression   Code = 2008
	SynUnsupportedNesting Code = 2009
	SynExpectAssign       Code = 2010

	// Семантические
	SemInfo                   Code = 3000
	SemUndeclaredVariable     Code = 3001
	SemUndefinedFunction      Code = 3002
	SemIncompatibleAssignment Code = 3003
	SemArityMismatch          Code = 3004
	SemParamTypeMismatch      Code = 3005
	SemInvalidOperands        Code = 3006
	SemDictKeyNotString       Code = 3007
	SemIndexNotInteger        Code = 3008
	SemUnknownMethod          Code = 3009
	SemLenOnScalar            Code = 3010
	SemReturnTypeMismatch     Code = 3011
	SemHeterogeneousContainer Code = 3012

	// Ввод-вывод
	IOInfo        Code = 4000
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002

	// Внешний тулчейн
	ToolInfo     Code = 5000
	ToolCCFailed Code = 5001
	ToolCCNotFound Code = 5002
)

// String renders the code as its phase prefix plus the numeric value,
// e.g. LEX1003 or SEM3001.
func (c Code) String() string {
	var prefix string
	switch {
	case c >= 5000:
		prefix = "TOOL"
	case c >= 4000:
		prefix = "IO"
	case c >= 3000:
		prefix = "SEM"
	case c >= 2000:
		prefix = "SYN"
	case c >= 1000:
		prefix = "LEX"
	default:
		prefix = "UNK"
	}
	return fmt.Sprintf("%s%04d", prefix, uint16(c))
}
