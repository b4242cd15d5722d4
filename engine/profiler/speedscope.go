package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrNoEvents = errors.New("profiler: no events")

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// WriteSpeedscope encodes the recorded scopes as a speedscope file. Closes
// whose open was overwritten by the ring are dropped; scopes still open are
// closed at the last timestamp.
func WriteSpeedscope(w io.Writer, title string) error {
	evs := evrb.snapshot()
	if len(evs) == 0 {
		return ErrNoEvents
	}

	base := evs[0].at
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	lastUS := int64(0)
	for _, e := range evs {
		atUS := max((e.at-base)/1000, lastUS)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.frame})
		}
		lastUS = atUS
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return fmt.Errorf("%w: none left after filtering", ErrNoEvents)
	}

	names := frameNames()
	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     title,
			Unit:     "microseconds",
			EndValue: lastUS,
			Events:   out,
		}},
		Exporter: "xenon-profiler",
		Name:     title,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// Dump writes the speedscope file to path, replacing it atomically.
func Dump(path, title string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteSpeedscope(f, title); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
