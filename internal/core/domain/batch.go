package domain

// SkippedItem records a batch item that could not be processed and why.
type SkippedItem struct {
	ItemID string `json:"itemID"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// BatchSummary separates processed results from skipped items.
type BatchSummary[T any] struct {
	Processed []T           `json:"processed"`
	Skipped   []SkippedItem `json:"skipped"`
}

func (s *BatchSummary[T]) Add(item T) {
	s.Processed = append(s.Processed, item)
}

func (s *BatchSummary[T]) Skip(id, name, reason string) {
	s.Skipped = append(s.Skipped, SkippedItem{ItemID: id, Name: name, Reason: reason})
}

// NewBatchSummary returns a summary with non-nil slices so it renders as [] rather than null.
func NewBatchSummary[T any]() BatchSummary[T] {
	return BatchSummary[T]{Processed: []T{}, Skipped: []SkippedItem{}}
}
