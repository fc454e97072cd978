package error

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecError_Rendering(t *testing.T) {
	cause := errors.New("undefined terminal symbol")

	tests := []struct {
		caption string
		err     *SpecError
		want    string
	}{
		{
			caption: "file, row, and column",
			err: &SpecError{
				Cause:      cause,
				SourceName: "grammar.txt",
				Row:        7,
				Col:        3,
			},
			want: "grammar.txt:7:3: error: undefined terminal symbol",
		},
		{
			caption: "file and row only",
			err: &SpecError{
				Cause:      cause,
				SourceName: "grammar.txt",
				Row:        7,
			},
			want: "grammar.txt:7: error: undefined terminal symbol",
		},
		{
			caption: "no position",
			err: &SpecError{
				Cause:      cause,
				SourceName: "grammar.txt",
			},
			want: "grammar.txt: error: undefined terminal symbol",
		},
		{
			caption: "no source name",
			err: &SpecError{
				Cause: cause,
			},
			want: "error: undefined terminal symbol",
		},
		{
			caption: "detail is appended",
			err: &SpecError{
				Cause:      cause,
				Detail:     "b",
				SourceName: "grammar.txt",
				Row:        7,
			},
			want: "grammar.txt:7: error: undefined terminal symbol: b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("unexpected rendering\nwant: %#v\ngot: %#v", tt.want, got)
			}
		})
	}
}

func TestSpecError_EchoesOffendingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grammar.txt")
	err := os.WriteFile(path, []byte("1 a\n-----\n<S> -> b\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}

	specErr := &SpecError{
		Cause:      errors.New("undefined terminal symbol"),
		Detail:     "b",
		FilePath:   path,
		SourceName: "grammar.txt",
		Row:        3,
	}
	want := "grammar.txt:3: error: undefined terminal symbol: b\n    <S> -> b"
	if got := specErr.Error(); got != want {
		t.Errorf("unexpected rendering\nwant: %#v\ngot: %#v", want, got)
	}
}

func TestSpecError_MissingFileOmitsLine(t *testing.T) {
	specErr := &SpecError{
		Cause:      errors.New("undefined terminal symbol"),
		FilePath:   filepath.Join(t.TempDir(), "nope.txt"),
		SourceName: "nope.txt",
		Row:        3,
	}
	want := "nope.txt:3: error: undefined terminal symbol"
	if got := specErr.Error(); got != want {
		t.Errorf("unexpected rendering\nwant: %#v\ngot: %#v", want, got)
	}
}

func TestTracker_Rendering(t *testing.T) {
	buf := &bytes.Buffer{}
	tracker := NewTracker(buf, "test.src")

	tracker.ReportErrorAt(2, 5, "invalid token: 'x'")
	tracker.ReportError("no position")
	tracker.ReportWarning("a warning")

	want := "test.src:2:5: error: invalid token: 'x'\n" +
		"test.src: error: no position\n" +
		"test.src: warning: a warning\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output\nwant: %#v\ngot: %#v", want, got)
	}

	if tracker.ErrorCount() != 2 {
		t.Errorf("unexpected error count: %v", tracker.ErrorCount())
	}
}
