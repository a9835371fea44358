package reorder

import "collectionview/internal/domain"

// Move returns a copy of items with fromID taken out and reinserted at the
// index toID occupies once fromID is gone. Unknown ids or fromID == toID
// return an unchanged copy.
func Move[T domain.Record](items []T, fromID, toID string) []T {
	out := make([]T, len(items))
	copy(out, items)
	if fromID == toID {
		return out
	}

	from := indexOf(out, fromID)
	if from < 0 || indexOf(out, toID) < 0 {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	to := indexOf(out, toID)

	out = append(out, moved)
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// MoveIDs is Move over a plain id list
func MoveIDs(ids []string, fromID, toID string) []string {
	keys := make([]key, len(ids))
	for i, id := range ids {
		keys[i] = key(id)
	}
	moved := Move(keys, fromID, toID)
	out := make([]string, len(moved))
	for i, k := range moved {
		out[i] = string(k)
	}
	return out
}

func indexOf[T domain.Record](items []T, id string) int {
	for i, item := range items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

type key string

func (k key) ID() string                { return string(k) }
func (k key) IsDisabled() bool          { return false }
func (k key) Field(string) (any, bool) { return nil, false }

// Arrange returns items in the given id order. Ids missing from order keep
// their relative position after the ordered ones; unknown ids are skipped.
func Arrange[T domain.Record](items []T, order []string) []T {
	byID := make(map[string]int, len(items))
	for i, item := range items {
		byID[item.ID()] = i
	}

	out := make([]T, 0, len(items))
	used := make([]bool, len(items))
	for _, id := range order {
		i, ok := byID[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, items[i])
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}
