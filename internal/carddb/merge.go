package carddb

import "strings"

// MergeSet replaces every record of setCode in db with fresh. Surviving
// records whose id is reissued by fresh are dropped as well, which happens
// when a set's listing pages also carry cards of other sets. db is not
// modified.
func MergeSet(db []Record, setCode string, fresh []Record) []Record {
	reissued := make(map[string]struct{}, len(fresh))
	for _, r := range fresh {
		reissued[r.UniqueID] = struct{}{}
	}

	out := make([]Record, 0, len(db)+len(fresh))
	for _, r := range db {
		if strings.EqualFold(r.SetID, setCode) {
			continue
		}
		if _, ok := reissued[r.UniqueID]; ok {
			continue
		}
		out = append(out, r)
	}
	return append(out, fresh...)
}
