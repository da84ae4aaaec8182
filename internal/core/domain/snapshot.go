package domain

import "time"

// LocalSnapshot is the allow-listed part of a planner state written to the
// local slot after every mutation. Notifications, admin caches and the
// syncing flag are never part of it.
type LocalSnapshot struct {
	User            *User                      `json:"user,omitempty"`
	Guests          []Guest                    `json:"guests"`
	BudgetItems     []BudgetItem               `json:"budget_items"`
	Region          Region                     `json:"region"`
	Procedures      map[Region][]ProcedureStep `json:"procedures"`
	Invitation      InvitationData             `json:"invitation"`
	FengShuiProfile *FengShuiProfile           `json:"feng_shui_profile,omitempty"`
	FengShuiResults []FengShuiResult           `json:"feng_shui_results"`
	GuestUsage      GuestUsage                 `json:"guest_usage"`
	Revision        int64                      `json:"revision"`
}

// CloudSnapshot is the allow-listed part of a planner state pushed to the
// remote per-user document.
type CloudSnapshot struct {
	Guests          []Guest                    `json:"guests" bson:"guests"`
	BudgetItems     []BudgetItem               `json:"budget_items" bson:"budget_items"`
	Procedures      map[Region][]ProcedureStep `json:"procedures" bson:"procedures"`
	Invitation      InvitationData             `json:"invitation" bson:"invitation"`
	FengShuiProfile *FengShuiProfile           `json:"feng_shui_profile,omitempty" bson:"feng_shui_profile,omitempty"`
	FengShuiResults []FengShuiResult           `json:"feng_shui_results" bson:"feng_shui_results"`
}

// CloudDocument is a CloudSnapshot as stored remotely.
type CloudDocument struct {
	UserID    string        `json:"user_id"`
	Revision  int64         `json:"revision"`
	UpdatedAt time.Time     `json:"updated_at"`
	Snapshot  CloudSnapshot `json:"snapshot"`
}
