// internal/app/system/search/search.go

// Package search builds the case-insensitive substring filters used by
// list and search endpoints. A search term matches when any of the
// entity's string fields contains it, ignoring case.
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Regex returns the escaped case-insensitive regex for one term.
func Regex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// AnyField returns a $or filter matching term against each of fields.
// An empty or whitespace-only term returns nil (no constraint).
func AnyField(term string, fields ...string) bson.M {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}
	re := Regex(term)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

// Keywords splits term on whitespace and returns a $or filter matching
// any keyword against any field. This is the universal search used by
// /candidates/search: every string-typed field of the entity is scanned.
func Keywords(term string, fields ...string) bson.M {
	words := strings.Fields(term)
	if len(words) == 0 || len(fields) == 0 {
		return nil
	}
	or := make([]bson.M, 0, len(words)*len(fields))
	for _, w := range words {
		re := Regex(w)
		for _, f := range fields {
			or = append(or, bson.M{f: re})
		}
	}
	return bson.M{"$or": or}
}

// Merge combines filter fragments with $and, skipping nil fragments.
// Returns an empty filter when nothing remains.
func Merge(parts ...bson.M) bson.M {
	kept := make([]bson.M, 0, len(parts))
	for _, p := range parts {
		if len(p) > 0 {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return bson.M{}
	case 1:
		return kept[0]
	default:
		return bson.M{"$and": kept}
	}
}
