package domain

// GuestGroup classifies who invited a guest.
type GuestGroup string

const (
	GroupFamily    GuestGroup = "FAMILY"
	GroupFriend    GuestGroup = "FRIEND"
	GroupColleague GuestGroup = "COLLEAGUE"
	GroupOther     GuestGroup = "OTHER"
)

// Probability is the attendance likelihood of a guest, in percent.
type Probability int

const (
	ProbabilityCertain  Probability = 100
	ProbabilityLikely   Probability = 80
	ProbabilityMaybe    Probability = 50
	ProbabilityUnlikely Probability = 0
)

// Weight returns the probability as a fraction in [0, 1] for known values.
func (p Probability) Weight() float64 {
	return float64(p) / 100
}

// Guest is a single invitation on the guest list.
type Guest struct {
	ID            string      `json:"id" bson:"id"`
	Name          string      `json:"name" bson:"name"`
	Group         GuestGroup  `json:"group" bson:"group"`
	Probability   Probability `json:"probability" bson:"probability"`
	ChildrenCount int         `json:"children_count" bson:"children_count"`
	ExpectedGift  int64       `json:"expected_gift" bson:"expected_gift"`
	Note          string      `json:"note,omitempty" bson:"note,omitempty"`
}

// Headcount is the number of people the invitation covers.
func (g Guest) Headcount() int {
	return 1 + g.ChildrenCount
}
