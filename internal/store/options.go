package store

import (
	"github.com/ivrlabs/callstore/internal/models"
	"github.com/ivrlabs/callstore/internal/util"
)

// listQuery is the resolved form of a set of ListOptions.
type listQuery struct {
	statuses       []string
	responseTypes  []string
	actionRequired []string
	minConfidence  *float64
	limit          uint64
	offset         uint64
}

// ListOption narrows or paginates List and Count results.
type ListOption func(*listQuery)

func newListQuery(opts []ListOption) *listQuery {
	q := &listQuery{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ByStatuses keeps records whose call status matches any of the given values.
func ByStatuses(statuses ...string) ListOption {
	return func(q *listQuery) {
		q.statuses = append(q.statuses, statuses...)
	}
}

// ByResponseTypes keeps records whose response type matches any of the given
// values.
func ByResponseTypes(types ...string) ListOption {
	return func(q *listQuery) {
		q.responseTypes = append(q.responseTypes, types...)
	}
}

// ByActionRequired keeps records whose agent-action flag matches any of the
// given values.
func ByActionRequired(values ...string) ListOption {
	return func(q *listQuery) {
		q.actionRequired = append(q.actionRequired, values...)
	}
}

// ByMinConfidence keeps records with a confidence score of at least min.
func ByMinConfidence(min float64) ListOption {
	return func(q *listQuery) {
		q.minConfidence = &min
	}
}

func WithLimit(limit uint64) ListOption {
	return func(q *listQuery) {
		q.limit = limit
	}
}

func WithOffset(offset uint64) ListOption {
	return func(q *listQuery) {
		q.offset = offset
	}
}

func (q *listQuery) matches(rec models.CallRecord) bool {
	if len(q.statuses) > 0 && !util.Contains(q.statuses, rec.CallStatus) {
		return false
	}
	if len(q.responseTypes) > 0 && !util.Contains(q.responseTypes, rec.ResponseType) {
		return false
	}
	if len(q.actionRequired) > 0 && !util.Contains(q.actionRequired, rec.AgentActionRequired) {
		return false
	}
	if q.minConfidence != nil && rec.ConfidenceScore < *q.minConfidence {
		return false
	}
	return true
}

func (q *listQuery) paginate(records []models.CallRecord) []models.CallRecord {
	if q.offset > 0 {
		if q.offset >= uint64(len(records)) {
			return []models.CallRecord{}
		}
		records = records[q.offset:]
	}
	if q.limit > 0 && q.limit < uint64(len(records)) {
		records = records[:q.limit]
	}
	return records
}
