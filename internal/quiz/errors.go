package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// BucketDeficit names a weight bucket that cannot meet its quota.
type BucketDeficit struct {
	Bucket WeightBucket `json:"bucket"`
	Need   int          `json:"need"`
	Have   int          `json:"have"`
}

// CategoryDeficit names a category with fewer than the required minimum.
type CategoryDeficit struct {
	Category int `json:"category"`
	Need     int `json:"need"`
	Have     int `json:"have"`
}

// PoolExhaustedError reports that the active question bank cannot satisfy
// the distribution and coverage constraints. This is a data-integrity
// fault in the bank, not a user error; the payload names every short
// bucket and category so operators can fix the data.
type PoolExhaustedError struct {
	Buckets    []BucketDeficit
	Categories []CategoryDeficit
	Selected   int
}

func (e *PoolExhaustedError) Error() string {
	var parts []string
	for _, b := range e.Buckets {
		parts = append(parts, fmt.Sprintf("weight bucket %s has %d of %d required questions", b.Bucket, b.Have, b.Need))
	}
	for _, c := range e.Categories {
		parts = append(parts, fmt.Sprintf("category %d has %d of %d required questions", c.Category, c.Have, c.Need))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("only %d of %d questions selectable", e.Selected, SelectionSize))
	}
	return "question pool exhausted: " + strings.Join(parts, "; ")
}

// TransientStoreError marks a repository failure as a connectivity
// hiccup worth retrying. Repositories classify and wrap; the service
// layer only looks at the marker.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return "transient store error: " + e.Err.Error()
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// IsTransient reports whether err carries a TransientStoreError anywhere
// in its chain.
func IsTransient(err error) bool {
	var t *TransientStoreError
	return errors.As(err, &t)
}

// ErrDailyLimitReached blocks a submission when the respondent has used
// up today's attempts.
var ErrDailyLimitReached = errors.New("daily answer limit reached")

// ErrResponseNotFound is returned by ResponseStore implementations when
// a response does not exist or belongs to another user.
var ErrResponseNotFound = errors.New("response not found")

// ValidationError rejects malformed respondent input before scoring.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}
