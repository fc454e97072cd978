package error

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// SpecError is an error detected while loading a language-definition file.
// It renders as `file:line:col: error: message`, with the position parts
// omitted when unknown, followed by the offending line when FilePath is
// set.
type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v:", e.SourceName)
	}
	if e.Row != 0 {
		fmt.Fprintf(&b, "%v:", e.Row)
		if e.Col != 0 {
			fmt.Fprintf(&b, "%v:", e.Col)
		}
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}

// Tracker records errors and warnings raised against a source file and
// renders them in `file:line:col: error: message` form. Whether any error
// has been recorded gates code emission.
type Tracker struct {
	w        io.Writer
	file     string
	errCount int
}

func NewTracker(w io.Writer, file string) *Tracker {
	return &Tracker{
		w:    w,
		file: file,
	}
}

func (t *Tracker) HasError() bool {
	return t.errCount > 0
}

func (t *Tracker) ErrorCount() int {
	return t.errCount
}

// ReportError records an error without position information.
func (t *Tracker) ReportError(message string) {
	t.errCount++
	fmt.Fprintf(t.w, "%v: error: %v\n", t.file, message)
}

// ReportErrorAt records an error at a 1-based line/column position.
func (t *Tracker) ReportErrorAt(line, col int, message string) {
	t.errCount++
	fmt.Fprintf(t.w, "%v:%v:%v: error: %v\n", t.file, line, col, message)
}

func (t *Tracker) ReportWarning(message string) {
	fmt.Fprintf(t.w, "%v: warning: %v\n", t.file, message)
}

func (t *Tracker) ReportWarningAt(line, col int, message string) {
	fmt.Fprintf(t.w, "%v:%v:%v: warning: %v\n", t.file, line, col, message)
}
