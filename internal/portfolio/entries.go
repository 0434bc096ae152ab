package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrNotAList = errors.New("section is not a list")

// EntryKey returns the merge key of a list entry: its id, or its name for
// entries that carry none (skills). The empty string means the entry has
// neither.
func EntryKey(entry json.RawMessage) (string, error) {
	var fields struct {
		ID   *EntryID `json:"id"`
		Name *string  `json:"name"`
	}
	if err := json.Unmarshal(entry, &fields); err != nil {
		return "", err
	}
	if fields.ID != nil && *fields.ID != "" {
		return string(*fields.ID), nil
	}
	if fields.Name != nil {
		return *fields.Name, nil
	}
	return "", nil
}

func splitEntries(raw json.RawMessage) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if len(raw) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAList, err)
	}
	return entries, nil
}

// DuplicateIDs lists the merge keys that occur more than once in a list
// section, sorted.
func DuplicateIDs(raw json.RawMessage) ([]string, error) {
	entries, err := splitEntries(raw)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		key, err := EntryKey(e)
		if err != nil {
			return nil, err
		}
		if key != "" {
			seen[key]++
		}
	}
	var dups []string
	for k, n := range seen {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)
	return dups, nil
}

// UpsertEntry replaces the entry of raw that shares entry's key, or appends
// entry when there is none. Order is preserved.
func UpsertEntry(raw, entry json.RawMessage) (json.RawMessage, error) {
	key, err := EntryKey(entry)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, errors.New("entry has neither id nor name")
	}
	entries, err := splitEntries(raw)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, e := range entries {
		k, err := EntryKey(e)
		if err != nil {
			return nil, err
		}
		if k == key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	return json.Marshal(entries)
}

// RemoveEntry drops every entry whose key is key and reports whether any was
// removed.
func RemoveEntry(raw json.RawMessage, key string) (json.RawMessage, bool, error) {
	entries, err := splitEntries(raw)
	if err != nil {
		return nil, false, err
	}
	kept := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		k, err := EntryKey(e)
		if err != nil {
			return nil, false, err
		}
		if k != key {
			kept = append(kept, e)
		}
	}
	out, err := json.Marshal(kept)
	return out, len(kept) != len(entries), err
}
