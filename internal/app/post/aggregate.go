package post

import "time"

// Clone returns a deep copy of the post. All mutating operations work
// on a clone and hand the copy to the repository, so a failed save
// never leaves a half-mutated post behind.
func (p *Post) Clone() *Post {
	cp := *p
	if p.Reactions != nil {
		cp.Reactions = make(map[string]int, len(p.Reactions))
		for k, v := range p.Reactions {
			cp.Reactions[k] = v
		}
	}
	if p.ReactedUsers != nil {
		cp.ReactedUsers = make(map[string][]string, len(p.ReactedUsers))
		for k, v := range p.ReactedUsers {
			cp.ReactedUsers[k] = append([]string(nil), v...)
		}
	}
	cp.Comments = cloneForest(p.Comments)
	if p.SortOrder != nil {
		v := *p.SortOrder
		cp.SortOrder = &v
	}
	if p.EditedAt != nil {
		t := *p.EditedAt
		cp.EditedAt = &t
	}
	return &cp
}

// ToggleReaction flips the user's membership in one reaction kind on a
// copy of the post and reports whether the reaction was added (true) or
// removed (false). Counts never go below zero, and toggling one kind
// leaves the user's other reactions on the post untouched.
func ToggleReaction(p *Post, userID, reactionID string) (*Post, bool) {
	out := p.Clone()
	if out.Reactions == nil {
		out.Reactions = make(map[string]int)
	}
	if out.ReactedUsers == nil {
		out.ReactedUsers = make(map[string][]string)
	}

	userReactions := out.ReactedUsers[userID]
	if contains(userReactions, reactionID) {
		if out.Reactions[reactionID] > 0 {
			out.Reactions[reactionID]--
		}
		out.ReactedUsers[userID] = remove(userReactions, reactionID)
		return out, false
	}

	out.Reactions[reactionID]++
	out.ReactedUsers[userID] = append(userReactions, reactionID)
	return out, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// SwapSortOrders exchanges the manual sort keys of two posts sitting at
// display indices ai and bi. A post without a key first gets one
// synthesized from the current clock minus its display index, which
// reproduces the default recency ordering, then the two keys are
// exchanged exactly. No other post is touched.
func SwapSortOrders(a, b *Post, ai, bi int, now time.Time) (*Post, *Post) {
	aOrder := sortKeyOrDefault(a, ai, now)
	bOrder := sortKeyOrDefault(b, bi, now)

	outA := a.Clone()
	outB := b.Clone()
	outA.SortOrder = &bOrder
	outB.SortOrder = &aOrder
	return outA, outB
}

func sortKeyOrDefault(p *Post, displayIndex int, now time.Time) int64 {
	if p.SortOrder != nil {
		return *p.SortOrder
	}
	return now.UnixMilli() - int64(displayIndex)
}
