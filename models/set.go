package models

import "encoding/json"

// StringSet is an insertion-ordered set of strings. The zero value is empty
// and ready to use; methods never mutate the receiver.
type StringSet []string

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Toggle returns a copy of the set with v added, or removed if it was present.
func (s StringSet) Toggle(v string) StringSet {
	out := make(StringSet, 0, len(s)+1)
	found := false
	for _, x := range s {
		if x == v {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

// Values returns a copy of the members.
func (s StringSet) Values() []string {
	return append([]string{}, s...)
}

// MarshalJSON encodes an empty set as [] rather than null.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON drops duplicates from the incoming array.
func (s *StringSet) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NewStringSet(raw...)
	return nil
}

// NewStringSet builds a set, ignoring repeated values.
func NewStringSet(values ...string) StringSet {
	out := make(StringSet, 0, len(values))
	for _, v := range values {
		if !out.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
