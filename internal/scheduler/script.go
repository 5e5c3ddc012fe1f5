package scheduler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scripted days are authored elsewhere and validated structurally there;
// this boundary stays defensive anyway: a malformed day is dropped (the
// engine then runs an empty news day) rather than aborting the run.

// ParseErrorKind classifies scripted-content problems.
type ParseErrorKind string

const (
	ParseBadYAML   ParseErrorKind = "bad_yaml"
	ParseBadDay    ParseErrorKind = "bad_day"
	ParseBadEffect ParseErrorKind = "bad_effect"
)

// ParseError reports one rejected scripted day.
type ParseError struct {
	Kind ParseErrorKind
	Day  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("scripted day %d: %s (%s)", e.Day, e.Msg, e.Kind)
}

// ScriptEffect is an authored per-asset percent move.
type ScriptEffect struct {
	AssetID string  `yaml:"asset"`
	Pct     float64 `yaml:"pct"`
}

// ScriptItem is one authored headline.
type ScriptItem struct {
	Headline string         `yaml:"headline"`
	Label    string         `yaml:"label"`
	Category string         `yaml:"category"`
	Effects  []ScriptEffect `yaml:"effects"`
}

// ScriptDay replaces the random flavor draw for its day entirely.
type ScriptDay struct {
	Day   int          `yaml:"day"`
	Items []ScriptItem `yaml:"items"`
}

// Script maps day -> authored content.
type Script map[int]*ScriptDay

type scriptFile struct {
	Days []ScriptDay `yaml:"days"`
}

// ParseScript decodes authored days. Unparseable yaml is a hard error; a
// structurally bad day is skipped and reported, keeping the run playable.
func ParseScript(b []byte) (Script, []*ParseError, error) {
	var f scriptFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, nil, &ParseError{Kind: ParseBadYAML, Msg: err.Error()}
	}

	script := Script{}
	var skipped []*ParseError
	for i := range f.Days {
		d := f.Days[i]
		if d.Day < 1 {
			skipped = append(skipped, &ParseError{Kind: ParseBadDay, Day: d.Day, Msg: "day must be >= 1"})
			continue
		}
		ok := true
		for _, item := range d.Items {
			if item.Headline == "" {
				skipped = append(skipped, &ParseError{Kind: ParseBadDay, Day: d.Day, Msg: "item missing headline"})
				ok = false
				break
			}
			for _, ef := range item.Effects {
				if ef.AssetID == "" || ef.Pct < -0.95 || ef.Pct > 10 {
					skipped = append(skipped, &ParseError{Kind: ParseBadEffect, Day: d.Day, Msg: "effect out of range"})
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		script[d.Day] = &f.Days[i]
	}
	return script, skipped, nil
}

// LoadScript reads and parses a scripted-days yaml file.
func LoadScript(path string) (Script, []*ParseError, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseScript(b)
}
