package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncType selects how much history a run pulls.
type SyncType string

const (
	SyncTypeFull        SyncType = "full"
	SyncTypeIncremental SyncType = "incremental"
)

// SyncRunStatus is the state of one ledger entry.
type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusCompleted SyncRunStatus = "completed"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

// SyncTrigger records what started a run.
type SyncTrigger string

const (
	SyncTriggerAPI      SyncTrigger = "api"
	SyncTriggerSchedule SyncTrigger = "schedule"
	SyncTriggerCLI      SyncTrigger = "cli"
)

// SyncRun is one entry of the sync ledger. Terminal runs are never updated.
type SyncRun struct {
	ID               uuid.UUID         `json:"id"`
	ConnectorID      uuid.UUID         `json:"connector_id"`
	SyncType         SyncType          `json:"sync_type"`
	Status           SyncRunStatus     `json:"status"`
	Trigger          SyncTrigger       `json:"trigger"`
	StartedAt        time.Time         `json:"started_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	RecordsProcessed EntityCounts      `json:"records_processed"`
	Errors           []SyncErrorDetail `json:"errors"`
}

// IsTerminal returns true once the run has completed or failed.
func (r *SyncRun) IsTerminal() bool {
	return r.Status == SyncRunStatusCompleted || r.Status == SyncRunStatusFailed
}

// SyncErrorDetail is one user-visible error captured during a run.
type SyncErrorDetail struct {
	Type    string `json:"type"`
	Entity  string `json:"entity,omitempty"`
	Message string `json:"message"`
}

// SyncResult is what a provider adapter reports for one run.
type SyncResult struct {
	RecordsProcessed EntityCounts      `json:"records_processed"`
	Errors           []SyncErrorDetail `json:"errors"`
	StartedAt        time.Time         `json:"started_at"`
	CompletedAt      time.Time         `json:"completed_at"`
}

// Failed reports whether any step recorded an error.
func (r *SyncResult) Failed() bool {
	return len(r.Errors) > 0
}

// EntityCount is the number of records one entity step processed.
type EntityCount struct {
	Entity string
	Count  int
}

// EntityCounts keeps per-entity counts in the order the steps ran. It
// encodes as a JSON object whose keys follow that order.
type EntityCounts []EntityCount

// Set records n for entity, appending it if not yet present.
func (ec *EntityCounts) Set(entity string, n int) {
	for i := range *ec {
		if (*ec)[i].Entity == entity {
			(*ec)[i].Count = n
			return
		}
	}
	*ec = append(*ec, EntityCount{Entity: entity, Count: n})
}

// Get returns the count for entity.
func (ec EntityCounts) Get(entity string) (int, bool) {
	for _, c := range ec {
		if c.Entity == entity {
			return c.Count, true
		}
	}
	return 0, false
}

// Total sums all counts.
func (ec EntityCounts) Total() int {
	total := 0
	for _, c := range ec {
		total += c.Count
	}
	return total
}

// Entities lists entity names in step order.
func (ec EntityCounts) Entities() []string {
	out := make([]string, len(ec))
	for i, c := range ec {
		out[i] = c.Entity
	}
	return out
}

func (ec EntityCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range ec {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Entity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", c.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (ec *EntityCounts) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ec = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("entity counts: expected object")
	}
	out := EntityCounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("entity counts: expected string key")
		}
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("entity counts %q: %w", key, err)
		}
		out = append(out, EntityCount{Entity: key, Count: n})
	}
	*ec = out
	return nil
}
