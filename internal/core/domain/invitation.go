package domain

// InvitationData backs the digital invitation card. There is exactly one per
// user and it is edited field by field.
type InvitationData struct {
	GroomName     string   `json:"groom_name" bson:"groom_name"`
	BrideName     string   `json:"bride_name" bson:"bride_name"`
	Date          string   `json:"date" bson:"date"`
	Time          string   `json:"time" bson:"time"`
	Location      string   `json:"location" bson:"location"`
	Address       string   `json:"address" bson:"address"`
	MapURL        string   `json:"map_url,omitempty" bson:"map_url,omitempty"`
	BankName      string   `json:"bank_name,omitempty" bson:"bank_name,omitempty"`
	AccountNumber string   `json:"account_number,omitempty" bson:"account_number,omitempty"`
	AccountHolder string   `json:"account_holder,omitempty" bson:"account_holder,omitempty"`
	Gallery       []string `json:"gallery,omitempty" bson:"gallery,omitempty"`
	Theme         string   `json:"theme" bson:"theme"`
	Message       string   `json:"message,omitempty" bson:"message,omitempty"`
}

// DefaultTheme is applied to fresh invitations.
const DefaultTheme = "classic-red"
