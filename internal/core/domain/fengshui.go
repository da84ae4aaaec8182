package domain

import "time"

// FengShuiProfile holds the couple's birth data used for date analysis.
type FengShuiProfile struct {
	GroomName      string `json:"groom_name" bson:"groom_name"`
	GroomBirthDate string `json:"groom_birth_date" bson:"groom_birth_date"`
	BrideName      string `json:"bride_name" bson:"bride_name"`
	BrideBirthDate string `json:"bride_birth_date" bson:"bride_birth_date"`
}

// FengShuiResult is a stored analysis produced by the advisor.
type FengShuiResult struct {
	ID        string    `json:"id" bson:"id"`
	Summary   string    `json:"summary" bson:"summary"`
	GoodDates []string  `json:"good_dates,omitempty" bson:"good_dates,omitempty"`
	Score     int       `json:"score" bson:"score"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
