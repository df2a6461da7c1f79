package post

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comment(id string, replies ...*Comment) *Comment {
	return &Comment{
		ID:         id,
		Content:    "content of " + id,
		IsExpanded: true,
		Replies:    replies,
	}
}

func collectIDs(forest []*Comment) []string {
	var ids []string
	for _, c := range forest {
		ids = append(ids, c.ID)
		ids = append(ids, collectIDs(c.Replies)...)
	}
	return ids
}

func findComment(forest []*Comment, id string) *Comment {
	for _, c := range forest {
		if c.ID == id {
			return c
		}
		if found := findComment(c.Replies, id); found != nil {
			return found
		}
	}
	return nil
}

func TestInsertTopLevel(t *testing.T) {
	forest := []*Comment{comment("a"), comment("b")}

	out := InsertTopLevel(forest, comment("new"))

	require.Len(t, out, 3)
	assert.Equal(t, "new", out[0].ID)
	assert.Equal(t, "a", out[1].ID)

	// Original forest untouched.
	assert.Len(t, forest, 2)
	assert.Equal(t, "a", forest[0].ID)
}

func TestInsertReply(t *testing.T) {
	forest := []*Comment{
		comment("a", comment("a1", comment("a1a"))),
		comment("b"),
	}

	out := InsertReply(forest, "a1a", comment("deep"))

	target := findComment(out, "a1a")
	require.NotNil(t, target)
	require.Len(t, target.Replies, 1)
	assert.Equal(t, "deep", target.Replies[0].ID)
	assert.True(t, target.IsExpanded)

	// New replies go to the head of the target's list.
	out = InsertReply(out, "a1a", comment("deeper"))
	target = findComment(out, "a1a")
	require.Len(t, target.Replies, 2)
	assert.Equal(t, "deeper", target.Replies[0].ID)
}

func TestInsertReplyExpandsCollapsedTarget(t *testing.T) {
	collapsed := comment("a")
	collapsed.IsExpanded = false
	forest := []*Comment{collapsed}

	out := InsertReply(forest, "a", comment("r"))

	assert.True(t, out[0].IsExpanded)
	assert.False(t, forest[0].IsExpanded)
}

func TestInsertReplyMissingTargetIsNoop(t *testing.T) {
	forest := []*Comment{comment("a")}

	out := InsertReply(forest, "ghost", comment("r"))

	assert.Equal(t, collectIDs(forest), collectIDs(out))
}

func TestInsertThenDeleteRestoresIDSet(t *testing.T) {
	forest := []*Comment{
		comment("a", comment("a1")),
		comment("b"),
	}
	before := collectIDs(forest)

	withReply := InsertReply(forest, "a1", comment("tmp"))
	require.Contains(t, collectIDs(withReply), "tmp")

	after := DeleteComment(withReply, "tmp")
	assert.Equal(t, before, collectIDs(after))
}

func TestEditComment(t *testing.T) {
	forest := []*Comment{comment("a", comment("a1"))}

	out := EditComment(forest, "a1", "updated")
	assert.Equal(t, "updated", findComment(out, "a1").Content)

	// Source forest keeps its content.
	assert.Equal(t, "content of a1", findComment(forest, "a1").Content)
}

func TestEditCommentTrimsContent(t *testing.T) {
	forest := []*Comment{comment("a")}

	out := EditComment(forest, "a", "  padded  ")
	assert.Equal(t, "padded", out[0].Content)
}

func TestEditCommentEmptyContentIsNoop(t *testing.T) {
	forest := []*Comment{comment("a")}

	out := EditComment(forest, "a", "   ")
	assert.Equal(t, "content of a", out[0].Content)
}

func TestEditCommentIdenticalContentIsNoop(t *testing.T) {
	forest := []*Comment{comment("a", comment("a1"))}

	out := EditComment(forest, "a1", "content of a1")

	edited := findComment(out, "a1")
	assert.Equal(t, "content of a1", edited.Content)
	assert.Equal(t, collectIDs(forest), collectIDs(out))
	assert.True(t, edited.IsExpanded)
}

func TestDeleteCommentDiscardsSubtree(t *testing.T) {
	forest := []*Comment{
		comment("a", comment("a1", comment("a1a")), comment("a2")),
		comment("b"),
	}

	out := DeleteComment(forest, "a1")

	ids := collectIDs(out)
	assert.NotContains(t, ids, "a1")
	assert.NotContains(t, ids, "a1a")
	assert.Contains(t, ids, "a2")
	assert.Contains(t, ids, "b")

	// Original forest still has the whole subtree.
	assert.Contains(t, collectIDs(forest), "a1a")
}

func TestDeleteTopLevelComment(t *testing.T) {
	forest := []*Comment{comment("a"), comment("b"), comment("c")}

	out := DeleteComment(forest, "b")

	assert.Equal(t, []string{"a", "c"}, collectIDs(out))
}

func TestDeleteCommentMissingTargetIsNoop(t *testing.T) {
	forest := []*Comment{comment("a", comment("a1"))}

	out := DeleteComment(forest, "ghost")
	assert.Equal(t, collectIDs(forest), collectIDs(out))
}

func TestToggleReplies(t *testing.T) {
	forest := []*Comment{comment("a", comment("a1"))}

	out := ToggleReplies(forest, "a")
	assert.False(t, out[0].IsExpanded)
	assert.True(t, forest[0].IsExpanded)

	out = ToggleReplies(out, "a")
	assert.True(t, out[0].IsExpanded)
}

func TestCountComments(t *testing.T) {
	assert.Equal(t, 0, CountComments(nil))
	assert.Equal(t, 0, CountComments([]*Comment{}))

	// Three top-level comments with two replies each.
	forest := []*Comment{
		comment("a", comment("a1"), comment("a2")),
		comment("b", comment("b1"), comment("b2")),
		comment("c", comment("c1"), comment("c2")),
	}
	assert.Equal(t, 9, CountComments(forest))
}

func TestCountCommentsDeepNesting(t *testing.T) {
	// A single chain nested well past the client's render depth.
	leaf := comment("depth9")
	for i := 8; i >= 0; i-- {
		leaf = comment("depth"+string(rune('0'+i)), leaf)
	}
	assert.Equal(t, 10, CountComments([]*Comment{leaf}))

	out := InsertReply([]*Comment{leaf}, "depth9", comment("depth10"))
	assert.Equal(t, 11, CountComments(out))
}
