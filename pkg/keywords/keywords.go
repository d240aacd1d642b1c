package keywords

// Accepted is a keyword that survived cleaning and will be sent to the API.
// Original keeps the user's spelling so results can be mapped back to it.
type Accepted struct {
	Original string
	Cleaned  string
	Modified bool
}

// Skipped is a keyword rejected during cleaning.
type Skipped struct {
	Original string
	Reason   string
}

// Duplicate is a keyword dropped because another accepted keyword cleans to
// the same value (case-insensitive).
type Duplicate struct {
	Original string
	Reason   string
}

// Report partitions a raw keyword list: every input ends up in exactly one
// of the three lists, in input order.
type Report struct {
	Accepted   []Accepted
	Skipped    []Skipped
	Duplicates []Duplicate
}

// Cleaned returns the accepted keywords' cleaned values, in order.
func (r Report) Cleaned() []string {
	out := make([]string, 0, len(r.Accepted))
	for _, a := range r.Accepted {
		out = append(out, a.Cleaned)
	}
	return out
}

// ModifiedCount returns how many accepted keywords were changed by cleaning.
func (r Report) ModifiedCount() int {
	n := 0
	for _, a := range r.Accepted {
		if a.Modified {
			n++
		}
	}
	return n
}
