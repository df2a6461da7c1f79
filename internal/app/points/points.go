package points

// Action point values. Question posts earn double on purpose: asking
// unresolved questions is the behaviour the board wants to reward.
const (
	Post            = 10
	QuestionPost    = 20
	SendReaction    = 2
	ReceiveReaction = 2
	Comment         = 5
	Reply           = 3
)

// Post categories. Stored as plain strings on the post record.
const (
	CategoryLearning   = "learning"
	CategoryImpression = "impression"
	CategoryQuestion   = "question"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryLearning, CategoryImpression, CategoryQuestion:
		return true
	}
	return false
}

// ForCategory returns the points awarded for authoring a post of the
// given category.
func ForCategory(category string) int {
	if category == CategoryQuestion {
		return QuestionPost
	}
	return Post
}

type Rank struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
}

var Ranks = []Rank{
	{Name: "Starter", MinPoints: 0},
	{Name: "Bronze", MinPoints: 100},
	{Name: "Silver", MinPoints: 300},
	{Name: "Gold", MinPoints: 500},
}

// RankFor maps a lifetime point total to a rank tier: the highest
// threshold not exceeding the total wins.
func RankFor(total int) Rank {
	for i := len(Ranks) - 1; i >= 0; i-- {
		if total >= Ranks[i].MinPoints {
			return Ranks[i]
		}
	}
	return Ranks[0]
}
