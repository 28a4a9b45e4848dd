package service

import "go.mongodb.org/mongo-driver/bson/primitive"

// Helpers for keeping reference arrays and their inverses in sync. All
// of them use set semantics: duplicate ids collapse, order of the first
// occurrence is kept.

// parseIDs converts hex ids to ObjectIDs. With strict=true a malformed
// id fails the whole call; otherwise malformed entries are dropped.
// Creation flows are strict, update flows are not.
func parseIDs(raw []string, strict bool) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool, len(raw))
	var out []primitive.ObjectID
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			if strict {
				return nil, Validation("invalid id: " + s)
			}
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// diffIDs computes toAdd = next − prev and toRemove = prev − next.
func diffIDs(prev, next []primitive.ObjectID) (toAdd, toRemove []primitive.ObjectID) {
	inPrev := make(map[primitive.ObjectID]bool, len(prev))
	for _, id := range prev {
		inPrev[id] = true
	}
	inNext := make(map[primitive.ObjectID]bool, len(next))
	for _, id := range next {
		inNext[id] = true
	}
	for _, id := range next {
		if !inPrev[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range prev {
		if !inNext[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
