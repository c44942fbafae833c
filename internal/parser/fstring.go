package parser

import (
	"minipyc/internal/ast"
	"minipyc/internal/diag"
	"minipyc/internal/token"
	"minipyc/internal/types"
)

// parseFString consumes the f-string token run and lowers it to a snprintf
// format string plus the typed interpolation arguments. The buffer itself is
// materialized by the emitter.
func (p *Parser) parseFString() ast.Expr {
	open := p.advance() // FStringStart
	var format []byte
	var args []ast.Expr

	for !p.atOr(token.FStringEnd, token.EOF) && !p.failed {
		switch p.peek().Kind {
		case token.StringLit:
			chunk := p.advance()
			format = append(format, chunk.Text...)
		case token.FStringExprStart:
			p.advance()
			expr := p.parseExpression()
			if p.failed {
				return nil
			}
			if expr.Type().Base == types.None {
				p.errAt(diag.SemInvalidOperands, expr.Span(), "cannot interpolate a value of type none")
				return nil
			}
			if p.at(token.FStringFormatSpec) {
				spec := p.advance()
				format = append(format, formatFromSpec(spec.Text, expr.Type().Base)...)
			} else {
				format = append(format, defaultConversion(expr.Type().Base)...)
			}
			p.internType(expr.Type())
			args = append(args, expr)
			p.expect(token.FStringExprEnd, diag.SynUnexpectedToken, "expected '}' to close the interpolation")
		default:
			p.errHere(diag.SynUnexpectedToken, "unexpected "+p.peek().Kind.String()+" inside f-string")
			return nil
		}
	}
	if p.failed {
		return nil
	}
	p.expect(token.FStringEnd, diag.SynUnexpectedToken, "expected '\"' to close the f-string")
	p.includes.Add("string_utils.h")
	return &ast.FString{Format: string(format), Args: args, ExprSpan: open.Span.Cover(p.lastSpan)}
}

// defaultConversion maps a value type to its printf conversion. BOOL and
// container values print as %s; the emitter lowers the argument itself.
func defaultConversion(t types.VarType) string {
	switch t {
	case types.Int:
		return "%d"
	case types.Float:
		return "%f"
	default:
		return "%s"
	}
}

// formatFromSpec rebuilds a printf conversion from a `[<|>|^][width][.prec][type]`
// format spec. A missing trailing type letter falls back to the default
// conversion for the value type.
func formatFromSpec(spec string, t types.VarType) string {
	out := []byte{'%'}
	i := 0
	if i < len(spec) && (spec[i] == '<' || spec[i] == '>' || spec[i] == '^') {
		// printf выравнивает вправо по умолчанию; '<' — это '-'.
		if spec[i] == '<' {
			out = append(out, '-')
		}
		i++
	}
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		out = append(out, spec[i])
		i++
	}
	if i < len(spec) && spec[i] == '.' {
		out = append(out, '.')
		i++
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			out = append(out, spec[i])
			i++
		}
	}
	if i < len(spec) {
		out = append(out, spec[i])
		return string(out)
	}
	return string(out) + defaultConversion(t)[1:]
}
