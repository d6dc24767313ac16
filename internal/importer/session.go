package importer

import (
	"sync"
	"time"

	"salesdash/internal/model"
)

// State is the lifecycle state of an upload session. The only legal forward
// path is idle -> parsing -> preview -> saving -> done; error is reachable
// from any state. Preview is the sole suspension point: nothing is persisted
// until the operator confirms.
type State string

const (
	StateIdle    State = "idle"
	StateParsing State = "parsing"
	StatePreview State = "preview"
	StateSaving  State = "saving"
	StateDone    State = "done"
	StateError   State = "error"
)

// Session is one upload flowing through the pipeline. Each session owns its
// temp-ID namespace; concurrent uploads share no mutable state. The mutex
// guards State, Result and Error against polling reads racing a save;
// readers outside this package must go through Snapshot.
type Session struct {
	mu sync.RWMutex

	ID             string             `json:"id"`
	Filename       string             `json:"filename"`
	Operator       string             `json:"operator"`
	State          State              `json:"state"`
	Result         *model.ParseResult `json:"result,omitempty"`
	DuplicateCount int                `json:"duplicateCount"`
	Error          string             `json:"error,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// Snapshot returns a consistent copy of the session safe to serialize while
// the session keeps moving. Rows are copied so a save rewriting store IDs
// cannot race the serialization.
func (s *Session) Snapshot() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &Session{
		ID:             s.ID,
		Filename:       s.Filename,
		Operator:       s.Operator,
		State:          s.State,
		DuplicateCount: s.DuplicateCount,
		Error:          s.Error,
		CreatedAt:      s.CreatedAt,
	}
	if s.Result != nil {
		result := *s.Result
		rows := make([]*model.RawSaleRow, len(s.Result.Rows))
		for i, row := range s.Result.Rows {
			copied := *row
			rows[i] = &copied
		}
		result.Rows = rows
		out.Result = &result
	}
	return out
}

// SaveReport summarizes a completed (or failed) save.
type SaveReport struct {
	RowsSaved     int                     `json:"rowsSaved"`
	BatchesSent   int                     `json:"batchesSent"`
	FailedBatch   *int                    `json:"failedBatch,omitempty"`
	NewStores     []model.CanonicalStore  `json:"newStores,omitempty"`
	ExpectedCount int                     `json:"expectedCount"`
	VerifiedCount int                     `json:"verifiedCount"`
	TotalQuantity int                     `json:"totalQuantity"`
	StoreCount    int                     `json:"storeCount"`
	Warnings      []string                `json:"warnings,omitempty"`
	AuditID       int64                   `json:"auditId"`
}
