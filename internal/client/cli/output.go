package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer writes either a human-readable line or the JSON form of a result.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, mode string) *printer {
	switch mode {
	case "json":
		return &printer{w: w, json: true}
	case "text":
		return &printer{w: w}
	}
	return &printer{w: w, json: !isTerminal(w)}
}

// Result prints v as JSON, or text when in human mode.
func (p *printer) Result(v any, text string) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(p.w, text)
	return err
}

type messageOutput struct {
	Message string `json:"message"`
}

func (p *printer) Message(msg string) error {
	return p.Result(messageOutput{Message: msg}, msg)
}
