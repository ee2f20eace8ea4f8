package program

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/omriBer/diet/internal/model"
)

type Phase string

const (
	PhaseFlood           Phase = "flood"
	PhaseCleanse         Phase = "cleanse"
	PhaseAdvancedCleanse Phase = "advanced-cleanse"
	PhaseTransition      Phase = "transition"
	PhaseTracks          Phase = "tracks"
)

// Family collapses the advanced cleanse weeks into the cleanse phase.
func (p Phase) Family() Phase {
	if p == PhaseAdvancedCleanse {
		return PhaseCleanse
	}
	return p
}

// WeekRule is the guidance shown for one program week.
type WeekRule struct {
	Week         int      `yaml:"week" json:"week"`
	Phase        Phase    `yaml:"phase" json:"phase"`
	PhaseLabel   string   `yaml:"phase_label" json:"phase_label"`
	Icon         string   `yaml:"icon" json:"icon"`
	Title        string   `yaml:"title" json:"title"`
	Focus        string   `yaml:"focus" json:"focus"`
	Instructions []string `yaml:"instructions" json:"instructions"`
	Allowed      string   `yaml:"allowed" json:"allowed"`
	Forbidden    string   `yaml:"forbidden" json:"forbidden"`
	Tips         []string `yaml:"tips" json:"tips"`
	Exercise     string   `yaml:"exercise" json:"exercise"`
	TreatRules   string   `yaml:"treat_rules" json:"treat_rules,omitempty"`
}

func (r WeekRule) HasTreatRules() bool {
	return r.TreatRules != ""
}

type TrackInfo struct {
	ID     model.TrackID `yaml:"id" json:"id"`
	Name   string        `yaml:"name" json:"name"`
	Icon   string        `yaml:"icon" json:"icon"`
	Carbs  string        `yaml:"carbs" json:"carbs"`
	Treats string        `yaml:"treats" json:"treats"`
	Tips   []string      `yaml:"tips" json:"tips"`
}

type ReferenceNote struct {
	Topic string `yaml:"topic" json:"topic"`
	Text  string `yaml:"text" json:"text"`
}

type content struct {
	Weeks             []WeekRule      `yaml:"weeks"`
	Tracks            []TrackInfo     `yaml:"tracks"`
	CleansingVeggies  []string        `yaml:"cleansing_veggies"`
	NotCountedVeggies []string        `yaml:"not_counted_veggies"`
	FatPortions       []string        `yaml:"fat_portions"`
	ReferenceNotes    []ReferenceNote `yaml:"reference_notes"`
	MotivationTips    []string        `yaml:"motivation_tips"`
}

//go:embed content.yaml
var contentYAML []byte

var (
	table    content
	maxWeek  int
	weekByNo map[int]WeekRule
)

func init() {
	c, err := parseContent(contentYAML)
	if err != nil {
		panic(fmt.Sprintf("program: %v", err))
	}
	table = *c
	weekByNo = make(map[int]WeekRule, len(c.Weeks))
	for _, w := range c.Weeks {
		weekByNo[w.Week] = w
		if w.Week > maxWeek {
			maxWeek = w.Week
		}
	}
}

func parseContent(data []byte) (*content, error) {
	var c content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode program content: %w", err)
	}
	if len(c.Weeks) == 0 {
		return nil, fmt.Errorf("program content has no weeks")
	}
	for i, w := range c.Weeks {
		if w.Week != i+1 {
			return nil, fmt.Errorf("program content week %d out of order at position %d", w.Week, i+1)
		}
		if w.Phase == "" || w.Title == "" {
			return nil, fmt.Errorf("program content week %d is missing phase or title", w.Week)
		}
	}
	if len(c.MotivationTips) == 0 {
		return nil, fmt.Errorf("program content has no motivation tips")
	}
	for _, t := range c.Tracks {
		if _, err := model.ParseTrackID(string(t.ID)); err != nil || t.ID == model.TrackUnset {
			return nil, fmt.Errorf("program content track %q is not a known track", t.ID)
		}
	}
	return &c, nil
}

// Lookup returns the rule for a program week. Weeks past the last defined one
// reuse it, and weeks below 1 fall back to week 1.
func Lookup(week int) WeekRule {
	if week > maxWeek {
		week = maxWeek
	}
	if week < 1 {
		week = 1
	}
	return cloneRule(weekByNo[week])
}

func PhaseOf(week int) Phase {
	return Lookup(week).Phase
}

func Weeks() []WeekRule {
	out := make([]WeekRule, 0, len(table.Weeks))
	for _, w := range table.Weeks {
		out = append(out, cloneRule(w))
	}
	return out
}

func Track(id model.TrackID) (TrackInfo, bool) {
	for _, t := range table.Tracks {
		if t.ID == id {
			t.Tips = slices.Clone(t.Tips)
			return t, true
		}
	}
	return TrackInfo{}, false
}

func Tracks() []TrackInfo {
	out := make([]TrackInfo, 0, len(table.Tracks))
	for _, t := range table.Tracks {
		t.Tips = slices.Clone(t.Tips)
		out = append(out, t)
	}
	return out
}

func CleansingVeggies() []string  { return slices.Clone(table.CleansingVeggies) }
func NotCountedVeggies() []string { return slices.Clone(table.NotCountedVeggies) }
func FatPortions() []string       { return slices.Clone(table.FatPortions) }
func MotivationTips() []string    { return slices.Clone(table.MotivationTips) }

func ReferenceNotes() []ReferenceNote {
	return slices.Clone(table.ReferenceNotes)
}

// TipOfTheDay picks a motivation tip that stays fixed for a calendar date.
func TipOfTheDay(date time.Time) string {
	tips := table.MotivationTips
	return tips[date.YearDay()%len(tips)]
}

func cloneRule(r WeekRule) WeekRule {
	r.Instructions = slices.Clone(r.Instructions)
	r.Tips = slices.Clone(r.Tips)
	return r
}
