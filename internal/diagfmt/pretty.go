package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"minipyc/internal/diag"
	"minipyc/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		f.Path, start.Line, start.Col, sev, d.Code, d.Message)

	writeSourceContext(w, f, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			label := "note"
			if opts.Color {
				label = color.New(color.FgCyan).Sprint(label)
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", nf.Path, nstart.Line, nstart.Col, label, note.Msg)
		}
	}
}

// writeSourceContext печатает строку исходника и подчёркивание ^~~~ под спаном.
func writeSourceContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts) {
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	// Выравнивание каретки по дисплейной ширине, не по байтам
	prefix := sliceByCol(line, start.Col-1)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	spanWidth := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlined := sliceByCol(line, end.Col-1)
		spanWidth = runewidth.StringWidth(underlined) - runewidth.StringWidth(prefix)
		if spanWidth < 1 {
			spanWidth = 1
		}
	}

	marker := "^" + strings.Repeat("~", spanWidth-1)
	if opts.Color {
		marker = color.New(color.FgHiRed, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, marker)
}

// sliceByCol возвращает префикс строки до колонки (1-based, в байтах
// нормализованного исходника колонка совпадает с байтовым смещением в строке).
func sliceByCol(line string, col uint32) string {
	if int(col) > len(line) {
		return line
	}
	return line[:col]
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
