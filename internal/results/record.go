package results

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimestampLayout is the on-disk format of a record's date_time.
const TimestampLayout = "15:04:05 02-01-2006"

// legacyLayout is accepted on read for files written by older tooling.
const legacyLayout = "2006-01-02 15:04:05"

// Path addresses a topic's result history and learning count.
type Path struct {
	Category string
	Lesson   string
	Topic    string
}

func (p Path) String() string {
	return p.Category + "/" + p.Lesson + "/" + p.Topic
}

// WrongItem is a part the learner got wrong, with its accepted answer.
type WrongItem struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

// Record is one completed session in a topic's result history.
type Record struct {
	Timestamp        Timestamp   `json:"date_time"`
	TimeTakenMinutes float64     `json:"time_taken_minutes"`
	CorrectAnswers   int         `json:"correct_answers"`
	WrongAnswers     int         `json:"wrong_answers"`
	WrongItems       []WrongItem `json:"wrong_questions_with_answers"`
}

// NewRecord builds a record finished at end after elapsed.
func NewRecord(end time.Time, elapsed time.Duration, correct, wrong int, items []WrongItem) Record {
	if items == nil {
		items = []WrongItem{}
	}
	return Record{
		Timestamp:        Timestamp{end},
		TimeTakenMinutes: RoundMinutes(elapsed),
		CorrectAnswers:   correct,
		WrongAnswers:     wrong,
		WrongItems:       items,
	}
}

// RoundMinutes converts d to minutes rounded to two decimals.
func RoundMinutes(d time.Duration) float64 {
	return math.Round(d.Minutes()*100) / 100
}

// Timestamp is a local wall-clock time stored as "HH:MM:SS DD-MM-YYYY".
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{TimestampLayout, legacyLayout} {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("date_time %q: unrecognised format", s)
}
