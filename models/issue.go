package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusAssigned   IssueStatus = "assigned"
	StatusInProgress IssueStatus = "in_progress"
	StatusResolved   IssueStatus = "resolved"
	StatusRejected   IssueStatus = "rejected"
)

// ParseIssueStatus validates a status string from a request body.
func ParseIssueStatus(s string) (IssueStatus, bool) {
	switch IssueStatus(s) {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusRejected:
		return IssueStatus(s), true
	}
	return "", false
}

// statusTransitions is the full lifecycle: pending issues can only be
// assigned (by an admin), assigned and in-progress issues are worked by the
// assigned crew member, resolved/rejected are terminal.
var statusTransitions = map[IssueStatus][]IssueStatus{
	StatusPending:    {StatusAssigned},
	StatusAssigned:   {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
	StatusResolved:   {},
	StatusRejected:   {},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s IssueStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// GeoLocation is where the issue was reported
type GeoLocation struct {
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
}

// ImageAnalysis holds the vision enrichment returned by the AI service.
// Advisory only; the citizen-supplied category/description stay authoritative.
type ImageAnalysis struct {
	PredictedCategory    string  `bson:"predictedCategory" json:"predictedCategory"`
	Confidence           float64 `bson:"confidence" json:"confidence"`
	GeneratedDescription string  `bson:"generatedDescription" json:"generatedDescription"`
	SeverityScore        int     `bson:"severityScore" json:"severityScore"`
	Miscategorized       bool    `bson:"miscategorized" json:"miscategorized"`
}

// TextAnalysis holds the NLP enrichment of the issue description.
type TextAnalysis struct {
	Category        string   `bson:"category" json:"category"`
	Confidence      float64  `bson:"confidence" json:"confidence"`
	Summary         string   `bson:"summary" json:"summary"`
	UrgencyLevel    int      `bson:"urgencyLevel" json:"urgencyLevel"`
	UrgencyLabel    string   `bson:"urgencyLabel" json:"urgencyLabel"`
	UrgencyKeywords []string `bson:"urgencyKeywords,omitempty" json:"urgencyKeywords,omitempty"`
}

// Issue represents a civic issue reported by a citizen.
// AssignedTo is nil exactly while the issue is pending; the enrichment
// pointers are nil until the AI service has analyzed the report, so "not
// analyzed" is distinguishable from an empty analysis.
type Issue struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description" json:"description"`
	Category      string              `bson:"category" json:"category"`
	Location      GeoLocation         `bson:"location" json:"location"`
	Images        []string            `bson:"images" json:"images"`
	Status        IssueStatus         `bson:"status" json:"status"`
	ReportedBy    primitive.ObjectID  `bson:"reportedBy" json:"reportedBy"`
	AssignedTo    *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	ImageAnalysis *ImageAnalysis      `bson:"imageAnalysis,omitempty" json:"imageAnalysis,omitempty"`
	TextAnalysis  *TextAnalysis       `bson:"textAnalysis,omitempty" json:"textAnalysis,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
