package catalog

import (
	"fmt"
	"time"
)

// Record is one ingested job-offer submission, as written to the relational
// table. (Time, TUID) is the storage key; both are fixed at construction.
type Record struct {
	Type            string
	Title           string
	Data            map[string]any
	AttentionVector []float64
	KeywordVector   []float64
	Time            time.Time
	TUID            string
}

func NewRecord(recordType, title string, data map[string]any, attentionVector, keywordVector []float64) *Record {
	return &Record{
		Type:            recordType,
		Title:           title,
		Data:            data,
		AttentionVector: attentionVector,
		KeywordVector:   keywordVector,
		Time:            time.Now().UTC(),
		TUID:            NewDocumentID(),
	}
}

// Validate confirms presence and basic shape of every required field before
// any write is attempted. It never coerces.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	if r.Type == "" {
		return fmt.Errorf("record: missing type")
	}
	if r.Title == "" {
		return fmt.Errorf("record: missing title")
	}
	if r.Data == nil {
		return fmt.Errorf("record: missing data payload")
	}
	if len(r.AttentionVector) == 0 {
		return fmt.Errorf("record: missing attention vector")
	}
	if len(r.KeywordVector) == 0 {
		return fmt.Errorf("record: missing keyword vector")
	}
	if r.Time.IsZero() {
		return fmt.Errorf("record: missing timestamp")
	}
	if r.TUID == "" {
		return fmt.Errorf("record: missing tuid")
	}
	return nil
}
