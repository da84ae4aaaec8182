package domain

// Region selects the ceremony customs a couple follows.
type Region string

const (
	RegionNorth   Region = "NORTH"
	RegionCentral Region = "CENTRAL"
	RegionSouth   Region = "SOUTH"
)

// Regions lists every supported region in display order.
var Regions = []Region{RegionNorth, RegionCentral, RegionSouth}

// TaskTemplate is a budget item blueprint attached to a ceremony step.
type TaskTemplate struct {
	Category      string `json:"category" bson:"category"`
	Name          string `json:"name" bson:"name"`
	EstimatedCost int64  `json:"estimated_cost" bson:"estimated_cost"`
}

// ProcedureStep is one stage of the regional ceremony guide.
type ProcedureStep struct {
	ID          string         `json:"id" bson:"id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Offerings   []string       `json:"offerings,omitempty" bson:"offerings,omitempty"`
	Tasks       []TaskTemplate `json:"tasks,omitempty" bson:"tasks,omitempty"`
	Tips        []string       `json:"tips,omitempty" bson:"tips,omitempty"`
	Taboos      []string       `json:"taboos,omitempty" bson:"taboos,omitempty"`
	Images      []string       `json:"images,omitempty" bson:"images,omitempty"`
}
