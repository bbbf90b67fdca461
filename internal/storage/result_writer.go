package storage

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ResultWriter persists a computation result
type ResultWriter interface {
	WriteResult(v interface{}) error
}

// JSONResultWriter writes indented JSON to a file, or to Out when no path is set
type JSONResultWriter struct {
	Path string
	Out  io.Writer
}

// NewJSONResultWriter writes to path, or to out when path is empty or "-".
// A nil out means stdout.
func NewJSONResultWriter(path string, out io.Writer) ResultWriter {
	if path == "-" {
		path = ""
	}
	if out == nil {
		out = os.Stdout
	}
	return &JSONResultWriter{Path: path, Out: out}
}

func (w *JSONResultWriter) WriteResult(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("encode result", err)
	}
	data = append(data, '\n')

	if w.Path == "" {
		if _, err := w.Out.Write(data); err != nil {
			return apperrors.NewIOError("write result", err)
		}
		return nil
	}
	if err := os.WriteFile(w.Path, data, 0o644); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("write %s", w.Path), err)
	}
	return nil
}
