package booking

import (
	"database/sql"
	"sort"

	"github.com/google/uuid"
)

// sortKey is the derived ordering key for a booking in listings. When the
// collection filter is active the collection pair is used; otherwise each
// field coalesces special request over session, so a special request slot
// takes priority for display ordering.
type sortKey struct {
	date  string
	hasDT bool
	time  string
	hasTM bool
}

func coalesce(a, b sql.NullString) (string, bool) {
	if a.Valid {
		return a.String, true
	}
	return b.String, b.Valid
}

func deriveSortKey(p Projection, hasCollectionDate bool) sortKey {
	var k sortKey
	if hasCollectionDate {
		k.date, k.hasDT = p.CollectionDate.String, p.CollectionDate.Valid
		k.time, k.hasTM = p.CollectionTime.String, p.CollectionTime.Valid
		return k
	}
	k.date, k.hasDT = coalesce(p.SpecialRequestDate, p.SessionDate)
	k.time, k.hasTM = coalesce(p.SpecialRequestTime, p.SessionTime)
	return k
}

// less orders keys lexicographically, which matches chronological order for
// zero-padded ISO dates and 24h times. A null date sorts after every non-null
// date; at equal dates a null time sorts after a non-null time.
func (k sortKey) less(other sortKey) bool {
	if k.hasDT != other.hasDT {
		return k.hasDT
	}
	if !k.hasDT {
		return false
	}
	if k.date != other.date {
		return k.date < other.date
	}
	if k.hasTM != other.hasTM {
		return k.hasTM
	}
	return k.time < other.time
}

// sortProjections orders the full filtered set by derived key, ascending.
// The sort is stable so equal keys keep their query order.
func sortProjections(rows []Projection, hasCollectionDate bool) {
	type keyed struct {
		key sortKey
		row Projection
	}
	pairs := make([]keyed, len(rows))
	for i, row := range rows {
		pairs[i] = keyed{key: deriveSortKey(row, hasCollectionDate), row: row}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].key.less(pairs[j].key)
	})
	for i, p := range pairs {
		rows[i] = p.row
	}
}

// paginate slices one page out of the sorted id sequence. Page numbers are
// 1-based; a page past the end yields an empty slice.
func paginate(rows []Projection, page, limit int) []uuid.UUID {
	start := (page - 1) * limit
	if start >= len(rows) {
		return nil
	}
	end := start + limit
	if end > len(rows) {
		end = len(rows)
	}
	ids := make([]uuid.UUID, 0, end-start)
	for _, row := range rows[start:end] {
		ids = append(ids, row.ID)
	}
	return ids
}

// Summary counts bookings per status across the full filtered set
type Summary struct {
	Confirmed int `json:"CONFIRMED"`
	Booked    int `json:"BOOKED"`
	TBC       int `json:"TBC"`
	Cancelled int `json:"CANCELLED"`
	NoAnswer  int `json:"NO_ANSWER"`
	WLMK      int `json:"WLMK"`
	VideoCall int `json:"VIDEO_CALL"`
	Total     int `json:"total"`
}

func summarize(rows []Projection) Summary {
	var s Summary
	for _, row := range rows {
		switch row.Status {
		case StatusConfirmed:
			s.Confirmed++
		case StatusBooked:
			s.Booked++
		case StatusTBC:
			s.TBC++
		case StatusCancelled:
			s.Cancelled++
		case StatusNoAnswer:
			s.NoAnswer++
		case StatusWLMK:
			s.WLMK++
		case StatusVideoCall:
			s.VideoCall++
		}
		s.Total++
	}
	return s
}
