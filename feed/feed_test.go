package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"seconds", 59 * time.Second, "59s"},
		{"minute boundary", 60 * time.Second, "1m"},
		{"minutes", 3599 * time.Second, "59m"},
		{"hour boundary", 3600 * time.Second, "1h"},
		{"hours", 86399 * time.Second, "23h"},
		{"day boundary", 86400 * time.Second, "1d"},
		{"days", 6 * 24 * time.Hour, "6d"},
		{"week boundary", 604800 * time.Second, "1w"},
		{"weeks", 2419199 * time.Second, "3w"},
		{"month boundary", 2419200 * time.Second, "1mo"},
		{"months", 31535999 * time.Second, "13mo"},
		{"year boundary", 31536000 * time.Second, "1y"},
		{"years", 2 * 31536000 * time.Second, "2y"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.elapsed), now))
		})
	}
}

func TestPostCost(t *testing.T) {
	assert.Equal(t, 10, PostCost(0, 0))
	assert.Equal(t, 13, PostCost(1, 0))
	assert.Equal(t, 12, PostCost(0, 1))
	// 4 likes, 2 comments: (4*0.5 + 2*0.3) * 5 = 13 -> rounded, plus base
	assert.Equal(t, 23, PostCost(4, 2))
	assert.Equal(t, 35, PostCost(10, 0))
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

func TestAggregateGroupsCommentsUnderPosts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	postedAt := now.Add(-2 * time.Hour)

	rows := []Row{
		{PostID: 1, PostContent: "hello #go", PostCreatedAt: postedAt, PostUser: "alice", LikeCount: 2, CommentCount: 2,
			CommentID: uintPtr(10), CommentContent: strPtr("first"), CommentUser: strPtr("bob"), CommentLikeCount: 1},
		{PostID: 1, PostContent: "hello #go", PostCreatedAt: postedAt, PostUser: "alice", LikeCount: 2, CommentCount: 2,
			CommentID: uintPtr(11), CommentContent: strPtr("second"), CommentUser: strPtr("carol")},
		{PostID: 2, PostContent: "quiet post", PostCreatedAt: postedAt, PostUser: "bob", LikeCount: 0, CommentCount: 0},
	}

	out := Aggregate(rows, now, Liked{})
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, uint(1), first.PostID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "hello #go", first.ContentRaw)
	assert.Equal(t, `hello <a href="/hashtags/go" class="hashtag-links">#go</a>`, first.Content)
	assert.Equal(t, "2h", first.CreatedAgo)
	assert.Equal(t, 2, first.LikeCount)
	assert.False(t, first.IsLiked)
	require.Len(t, first.Comments, 2)
	assert.Equal(t, "first", first.Comments[0].Content)
	assert.Equal(t, "bob", first.Comments[0].Username)
	assert.Equal(t, 1, first.Comments[0].LikeCount)
	assert.Equal(t, "second", first.Comments[1].Content)

	second := out[1]
	assert.Equal(t, uint(2), second.PostID)
	require.NotNil(t, second.Comments)
	assert.Empty(t, second.Comments)
}

func TestAggregateKeepsRowOrder(t *testing.T) {
	now := time.Now()
	rows := []Row{
		{PostID: 3, PostCreatedAt: now.Add(-time.Minute), PostUser: "a"},
		{PostID: 1, PostCreatedAt: now.Add(-time.Hour), PostUser: "b"},
		{PostID: 2, PostCreatedAt: now.Add(-2 * time.Hour), PostUser: "c"},
	}
	out := Aggregate(rows, now, Liked{})
	require.Len(t, out, 3)
	assert.Equal(t, uint(3), out[0].PostID)
	assert.Equal(t, uint(1), out[1].PostID)
	assert.Equal(t, uint(2), out[2].PostID)
}

func TestAggregateLikedFlags(t *testing.T) {
	now := time.Now()
	rows := []Row{
		{PostID: 1, PostCreatedAt: now, PostUser: "a", CommentID: uintPtr(7), CommentContent: strPtr("c"), CommentUser: strPtr("b")},
		{PostID: 2, PostCreatedAt: now, PostUser: "b"},
	}
	liked := Liked{
		Posts:    map[uint]bool{1: true},
		Comments: map[uint]bool{7: true},
	}
	out := Aggregate(rows, now, liked)
	require.Len(t, out, 2)
	assert.True(t, out[0].IsLiked)
	assert.True(t, out[0].Comments[0].IsLiked)
	assert.False(t, out[1].IsLiked)
}

func TestAggregateEmpty(t *testing.T) {
	out := Aggregate(nil, time.Now(), Liked{})
	assert.Empty(t, out)
}
