package postgres

import (
	"database/sql"
	"time"
)

// insertBatchSize keeps multi-row inserts well under the postgres bind
// parameter limit for the widest table.
const insertBatchSize = 500

func nullTimeToTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func nullInt64ToIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func intPtrToNullInt64(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func timePtrToNullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

// chunkModels splits insert models into batches of at most size entries.
func chunkModels[T any](items []T, size int) [][]any {
	if size <= 0 {
		size = insertBatchSize
	}
	out := make([][]any, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batch := make([]any, 0, end-start)
		for _, item := range items[start:end] {
			batch = append(batch, item)
		}
		out = append(out, batch)
	}
	return out
}

// lastByID keeps the last occurrence of every id, in first-seen order. A
// single multi-row upsert cannot touch the same key twice.
func lastByID[T any](items []T, idOf func(T) int64) []T {
	index := make(map[int64]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := idOf(item)
		if pos, ok := index[id]; ok {
			out[pos] = item
			continue
		}
		index[id] = len(out)
		out = append(out, item)
	}
	return out
}
