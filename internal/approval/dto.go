package approval

import (
	"time"

	"github.com/jkorir/maziwa/pkg/geo"
)

// ProcessRequest represents the request to approve one collection after
// station weighing. WeighedAt defaults to the current time when omitted;
// Location is the staff's position at weighing and only feeds the advisory
// GPS check.
type ProcessRequest struct {
	CollectionID   int64      `json:"collection_id" validate:"required,gt=0"`
	ReceivedLiters float64    `json:"received_liters" validate:"gte=0"`
	WeighedAt      *time.Time `json:"weighed_at,omitempty"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	Location       *geo.Point `json:"location,omitempty"`
}

// BatchRequest represents the request to approve several collections in order
type BatchRequest struct {
	Items []ProcessRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// BatchItemResult is the outcome for one collection in a batch run
type BatchItemResult struct {
	CollectionID int64   `json:"collection_id"`
	Approved     bool    `json:"approved"`
	Error        string  `json:"error,omitempty"`
	Approval     *Record `json:"approval,omitempty"`
}

// BatchResult summarizes a batch run
type BatchResult struct {
	Processed int               `json:"processed"`
	Approved  int               `json:"approved"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}
