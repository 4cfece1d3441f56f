// Package progress renders mobyprogress updates as plain lines or as a
// stream of JSON messages.
package progress

import (
	"io"

	"github.com/pcj/mobyprogress"
)

type formatProgress interface {
	formatStatus(id, format string, a ...interface{}) []byte
	formatProgress(id, action string, progress *JSONProgress) []byte
}

// NewProgressOutput returns an Output writing human readable lines.
func NewProgressOutput(out io.Writer) mobyprogress.Output {
	return &progressOutput{sf: &rawProgressFormatter{}, out: out, newLines: true}
}

// NewJSONProgressOutput returns an Output writing one JSONMessage per
// update.
func NewJSONProgressOutput(out io.Writer) mobyprogress.Output {
	return &progressOutput{sf: &jsonProgressFormatter{}, out: out}
}

// Discard returns an Output that drops every update.
func Discard() mobyprogress.Output {
	return discard{}
}

type discard struct{}

func (discard) WriteProgress(mobyprogress.Progress) error { return nil }

type progressOutput struct {
	sf       formatProgress
	out      io.Writer
	newLines bool
}

// WriteProgress implements mobyprogress.Output.
func (out *progressOutput) WriteProgress(prog mobyprogress.Progress) error {
	var formatted []byte
	if prog.Message != "" {
		formatted = out.sf.formatStatus(prog.ID, "%s", prog.Message)
	} else {
		jsonProgress := JSONProgress{Current: prog.Current, Total: prog.Total, Units: prog.Units}
		formatted = out.sf.formatProgress(prog.ID, prog.Action, &jsonProgress)
	}
	if _, err := out.out.Write(formatted); err != nil {
		return err
	}

	if out.newLines && prog.LastUpdate {
		_, err := out.out.Write(out.sf.formatStatus("", ""))
		return err
	}
	return nil
}
