// Package token defines lexical token kinds for the MiniPy compiler.
// Invariants:
//   - Token.Text is a copy of the token's bytes in the normalized source,
//     except for synthetic layout tokens (Newline, Indent, Dedent) and
//     f-string markers, whose Text may be empty.
//   - Token.Span covers exactly the bytes of Text (Start..End) for textual
//     tokens, except string literals: their Text is the content without
//     quotes while their Span includes the quotes.
//   - Type names (int, float, string, bool, list, tuple, dict) have dedicated
//     kinds: the parser dispatches typed assignments on them directly.
//   - Method names (append, upper, lower, strip, replace, split, find) lex as
//     CallMethod with the name preserved in Text.
//   - 'not' is a keyword the lexer recognizes but no production consumes.
package token
