package progress

import (
	"encoding/json"
	"fmt"
)

const streamNewline = "\r\n"

// JSONProgress is the counter part of an update.
type JSONProgress struct {
	Current int64  `json:"current,omitempty"`
	Total   int64  `json:"total,omitempty"`
	Units   string `json:"units,omitempty"`
}

// String renders "current/total units (pct%)", or the empty string when
// there is nothing to count.
func (p *JSONProgress) String() string {
	if p.Current <= 0 && p.Total <= 0 {
		return ""
	}
	units := ""
	if p.Units != "" {
		units = " " + p.Units
	}
	if p.Total <= 0 {
		return fmt.Sprintf("%d%s", p.Current, units)
	}
	current := p.Current
	if current > p.Total {
		current = p.Total
	}
	return fmt.Sprintf("%d/%d%s (%d%%)", current, p.Total, units, current*100/p.Total)
}

// JSONMessage is one line of the JSON stream.
type JSONMessage struct {
	ID       string        `json:"id,omitempty"`
	Status   string        `json:"status,omitempty"`
	Progress *JSONProgress `json:"progressDetail,omitempty"`
}

type rawProgressFormatter struct{}

func (sf *rawProgressFormatter) formatStatus(id, format string, a ...interface{}) []byte {
	prefix := ""
	if id != "" {
		prefix = id + ": "
	}
	return []byte(prefix + fmt.Sprintf(format, a...) + streamNewline)
}

func (sf *rawProgressFormatter) formatProgress(id, action string, progress *JSONProgress) []byte {
	if progress == nil {
		progress = &JSONProgress{}
	}
	endl := "\r"
	if progress.String() == "" {
		endl += "\n"
	}
	prefix := ""
	if id != "" {
		prefix = id + ": "
	}
	return []byte(prefix + action + " " + progress.String() + endl)
}

type jsonProgressFormatter struct{}

func (sf *jsonProgressFormatter) formatStatus(id, format string, a ...interface{}) []byte {
	data, _ := json.Marshal(&JSONMessage{ID: id, Status: fmt.Sprintf(format, a...)})
	return append(data, streamNewline...)
}

func (sf *jsonProgressFormatter) formatProgress(id, action string, progress *JSONProgress) []byte {
	data, _ := json.Marshal(&JSONMessage{ID: id, Status: action, Progress: progress})
	return append(data, streamNewline...)
}
