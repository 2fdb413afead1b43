package testutil

import "strings"

// Recorder collects notices in the order they were reported.
type Recorder struct {
	OKs   []string
	Warns []string
	All   []string
}

func (r *Recorder) OK(msg string) {
	r.OKs = append(r.OKs, msg)
	r.All = append(r.All, msg)
}

func (r *Recorder) Warn(msg string) {
	r.Warns = append(r.Warns, msg)
	r.All = append(r.All, msg)
}

// Last returns the most recent notice, or "" if none.
func (r *Recorder) Last() string {
	if len(r.All) == 0 {
		return ""
	}
	return r.All[len(r.All)-1]
}

// Contains reports whether any notice contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, m := range r.All {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func (r *Recorder) Reset() {
	r.OKs, r.Warns, r.All = nil, nil, nil
}
