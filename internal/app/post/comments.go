package post

import "strings"

// Comment forest operations. Every exported function works on a deep
// copy and returns the rebuilt forest, so callers never see a shared
// node mutated underneath them. A target id that no longer exists makes
// the operation a silent no-op: another participant deleting the node
// concurrently is expected and non-fatal.

func cloneComment(c *Comment) *Comment {
	cp := *c
	cp.Replies = cloneForest(c.Replies)
	return &cp
}

func cloneForest(forest []*Comment) []*Comment {
	if forest == nil {
		return nil
	}
	out := make([]*Comment, len(forest))
	for i, c := range forest {
		out[i] = cloneComment(c)
	}
	return out
}

// InsertTopLevel prepends a comment to the top of the forest.
func InsertTopLevel(forest []*Comment, c *Comment) []*Comment {
	out := make([]*Comment, 0, len(forest)+1)
	out = append(out, c)
	out = append(out, cloneForest(forest)...)
	return out
}

// InsertReply prepends a reply to the first comment whose id matches
// targetID (pre-order: node, then its replies, then siblings) and
// expands that comment so the new reply is visible.
func InsertReply(forest []*Comment, targetID string, reply *Comment) []*Comment {
	out := cloneForest(forest)
	insertReply(out, targetID, reply)
	return out
}

func insertReply(forest []*Comment, targetID string, reply *Comment) bool {
	for _, c := range forest {
		if c.ID == targetID {
			c.Replies = append([]*Comment{reply}, c.Replies...)
			c.IsExpanded = true
			return true
		}
		if insertReply(c.Replies, targetID, reply) {
			return true
		}
	}
	return false
}

// EditComment replaces the content of the comment with the given id.
// An empty (after trimming) or unchanged content leaves the node alone.
func EditComment(forest []*Comment, targetID, content string) []*Comment {
	out := cloneForest(forest)
	content = strings.TrimSpace(content)
	if content == "" {
		return out
	}
	editComment(out, targetID, content)
	return out
}

func editComment(forest []*Comment, targetID, content string) bool {
	for _, c := range forest {
		if c.ID == targetID {
			if c.Content != content {
				c.Content = content
			}
			return true
		}
		if editComment(c.Replies, targetID, content) {
			return true
		}
	}
	return false
}

// DeleteComment removes the comment with the given id together with its
// entire subtree. Direct children of each list are checked before
// descending, matching how the board splices a node out of whichever
// reply list holds it.
func DeleteComment(forest []*Comment, targetID string) []*Comment {
	out := cloneForest(forest)
	return deleteComment(out, targetID)
}

func deleteComment(forest []*Comment, targetID string) []*Comment {
	for i, c := range forest {
		if c.ID == targetID {
			return append(forest[:i], forest[i+1:]...)
		}
	}
	for _, c := range forest {
		if pruned := deleteComment(c.Replies, targetID); len(pruned) != len(c.Replies) {
			c.Replies = pruned
			break
		}
	}
	return forest
}

// ToggleReplies flips the expanded state of the comment with the given id.
func ToggleReplies(forest []*Comment, targetID string) []*Comment {
	out := cloneForest(forest)
	toggleReplies(out, targetID)
	return out
}

func toggleReplies(forest []*Comment, targetID string) bool {
	for _, c := range forest {
		if c.ID == targetID {
			c.IsExpanded = !c.IsExpanded
			return true
		}
		if toggleReplies(c.Replies, targetID) {
			return true
		}
	}
	return false
}

// CountComments returns the total number of comments in the forest,
// replies at every depth included.
func CountComments(forest []*Comment) int {
	total := 0
	for _, c := range forest {
		total += 1 + CountComments(c.Replies)
	}
	return total
}
