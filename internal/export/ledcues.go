package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/skyshow-data/missionkit/internal/wpl"
)

// LED cue documents drive the onboard light controller: a cue colours a
// contiguous range of waypoint indices, anything uncovered falls back to
// the global defaults.

type Cue struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Color string `json:"color"`
	Mode  string `json:"mode"`
}

type CueDefaults struct {
	Mode       string  `json:"mode"`
	Color      string  `json:"color"`
	Brightness float64 `json:"brightness"`
}

type CueDoc struct {
	GlobalDefaults CueDefaults `json:"global_defaults"`
	Cues           []Cue       `json:"cues"`
}

// DefaultCueDefaults is dim white, always on.
var DefaultCueDefaults = CueDefaults{Mode: "solid", Color: "#FFFFFF", Brightness: 0.5}

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseCueSpec parses one "from:to:#RRGGBB:mode" range spec.
func ParseCueSpec(spec string) (Cue, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return Cue{}, fmt.Errorf("cue spec %q: want from:to:#RRGGBB:mode", spec)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return Cue{}, fmt.Errorf("cue spec %q: bad from index: %w", spec, err)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return Cue{}, fmt.Errorf("cue spec %q: bad to index: %w", spec, err)
	}
	if from < 0 || to < from {
		return Cue{}, fmt.Errorf("cue spec %q: range %d..%d out of order", spec, from, to)
	}
	if !colorRe.MatchString(parts[2]) {
		return Cue{}, fmt.Errorf("cue spec %q: color %q is not #RRGGBB", spec, parts[2])
	}
	return Cue{From: from, To: to, Color: parts[2], Mode: parts[3]}, nil
}

// BuildCueDoc parses a list of range specs into a cue document.
func BuildCueDoc(specs []string) (*CueDoc, error) {
	doc := &CueDoc{GlobalDefaults: DefaultCueDefaults, Cues: []Cue{}}
	for _, s := range specs {
		cue, err := ParseCueSpec(s)
		if err != nil {
			return nil, err
		}
		doc.Cues = append(doc.Cues, cue)
	}
	return doc, nil
}

// WriteCueDoc writes the cue document as indented JSON.
func WriteCueDoc(w io.Writer, doc *CueDoc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCueDocFile writes the cue document to a file.
func WriteCueDocFile(path string, doc *CueDoc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCueDoc(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LEDTemplate maps each waypoint index to an initial light state:
// "OFF" for takeoff and landing rows, blank (meaning "no change") for
// pattern waypoints. The crew fills the blanks in by hand.
func LEDTemplate(m *wpl.Mission) map[string]string {
	out := make(map[string]string, len(m.Waypoints))
	for _, w := range m.Waypoints {
		switch w.Command {
		case wpl.CmdNavTakeoff, wpl.CmdNavLand, wpl.CmdNavReturnToLaunch:
			out[strconv.Itoa(w.Index)] = "OFF"
		default:
			out[strconv.Itoa(w.Index)] = ""
		}
	}
	return out
}

// WriteLEDTemplateFile writes the per-waypoint template JSON.
func WriteLEDTemplateFile(path string, m *wpl.Mission) error {
	data, err := json.MarshalIndent(LEDTemplate(m), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
