package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"fixmycity-be/middlewares"
	"fixmycity-be/models"
	"fixmycity-be/repositories"
	"fixmycity-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The AI client and repositories are package-level so tests can swap fakes in.
var (
	aiClient  = services.NewClient()
	userRepo  repositories.UserRepository  = repositories.NewUserRepository()
	issueRepo repositories.IssueRepository = repositories.NewIssueRepository()
)

// callerObjectID extracts the authenticated user's id from the context.
func callerObjectID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get(middlewares.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return primitive.NilObjectID, false
	}

	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// userRef resolves a user id into the {id, name, email} shape the portals
// render for reporter/assignee columns.
func userRef(ctx context.Context, id primitive.ObjectID) map[string]interface{} {
	ref := map[string]interface{}{"id": id}

	if user, err := userRepo.FindByID(ctx, id); err == nil {
		ref["name"] = user.Name
		ref["email"] = user.Email
	}
	return ref
}

// expandIssue attaches reporter and assignee identities to an issue document.
func expandIssue(ctx context.Context, issue models.Issue) gin.H {
	out := gin.H{
		"id":          issue.ID,
		"title":       issue.Title,
		"description": issue.Description,
		"category":    issue.Category,
		"location":    issue.Location,
		"images":      issue.Images,
		"status":      issue.Status,
		"reportedBy":  userRef(ctx, issue.ReportedBy),
		"createdAt":   issue.CreatedAt,
		"updatedAt":   issue.UpdatedAt,
	}
	if issue.AssignedTo != nil {
		out["assignedTo"] = userRef(ctx, *issue.AssignedTo)
	}
	if issue.ImageAnalysis != nil {
		out["imageAnalysis"] = issue.ImageAnalysis
	}
	if issue.TextAnalysis != nil {
		out["textAnalysis"] = issue.TextAnalysis
	}
	return out
}

// CreateIssue handles a citizen reporting a new issue. Enrichment by the AI
// service is strictly best-effort: any failure there is logged and the issue
// is created without it.
func CreateIssue(c *gin.Context) {
	reportedBy, ok := callerObjectID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required,max=100"`
		Lat         *float64 `json:"lat" binding:"required"`
		Lng         *float64 `json:"lng" binding:"required"`
		Address     string   `json:"address,omitempty"`
		Image       string   `json:"image,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location: models.GeoLocation{
			Lat:     *input.Lat,
			Lng:     *input.Lng,
			Address: input.Address,
		},
		Images:     []string{},
		Status:     models.StatusPending,
		ReportedBy: reportedBy,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	// Best-effort enrichment before persisting. A slow or dead AI service
	// must never fail the report itself.
	aiCtx, aiCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer aiCancel()

	if input.Image != "" {
		issue.Images = append(issue.Images, input.Image)
		if analysis, err := aiClient.AnalyzeImage(aiCtx, input.Image); err != nil {
			log.Println("AI image analysis skipped:", err)
		} else {
			issue.ImageAnalysis = analysis
		}
	}

	if analysis, err := aiClient.AnalyzeText(aiCtx, input.Description); err != nil {
		log.Println("AI text analysis skipped:", err)
	} else {
		issue.TextAnalysis = analysis
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := issueRepo.Insert(ctx, &issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Issue reported successfully",
		"issue":   issue,
	})
}

// GetAllIssues lets an admin view every issue with reporter and assignee
// identities expanded.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := issueRepo.FindAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve issues"})
		return
	}

	expanded := make([]gin.H, 0, len(issues))
	for _, issue := range issues {
		expanded = append(expanded, expandIssue(ctx, issue))
	}

	c.JSON(http.StatusOK, expanded)
}

// GetMyIssues returns only the issues reported by the calling citizen.
func GetMyIssues(c *gin.Context) {
	caller, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := issueRepo.FindByReporter(ctx, caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetAssignedIssues returns only the issues currently assigned to the
// calling crew member.
func GetAssignedIssues(c *gin.Context) {
	caller, ok := callerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := issueRepo.FindByAssignee(ctx, caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve issues"})
		return
	}

	expanded := make([]gin.H, 0, len(issues))
	for _, issue := range issues {
		expanded = append(expanded, expandIssue(ctx, issue))
	}

	c.JSON(http.StatusOK, expanded)
}

// GetIssue retrieves a single issue by its ID with identities expanded.
// Admins see any issue; citizens and crew only their own records.
func GetIssue(c *gin.Context) {
	caller, ok := callerObjectID(c)
	if !ok {
		return
	}

	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := issueRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve issue"})
		}
		return
	}

	roleVal, _ := c.Get(middlewares.ContextRole)
	switch roleVal {
	case models.RoleCitizen:
		if issue.ReportedBy != caller {
			c.JSON(http.StatusForbidden, gin.H{"message": "You did not report this issue"})
			return
		}
	case models.RoleCrew:
		if issue.AssignedTo == nil || *issue.AssignedTo != caller {
			c.JSON(http.StatusForbidden, gin.H{"message": "You are not assigned to this issue"})
			return
		}
	}

	c.JSON(http.StatusOK, expandIssue(ctx, *issue))
}

// AssignIssue lets an admin hand a pending issue to a crew member. The
// repository update is conditional on the issue still being pending, so a
// racing second admin gets a 400 instead of silently overwriting.
func AssignIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue ID"})
		return
	}

	var input struct {
		CrewID string `json:"crewId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	crewID, err := primitive.ObjectIDFromHex(input.CrewID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid crew ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The assignment target must exist and actually be a crew member.
	crew, err := userRepo.FindByID(ctx, crewID)
	if err != nil || crew.Role != models.RoleCrew {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Assignment target is not a crew member"})
		return
	}

	updated, err := issueRepo.Assign(ctx, issueID, crewID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Issue not found"})
		case errors.Is(err, repositories.ErrNotPending):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Issue is not pending and cannot be assigned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to assign issue"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue assigned successfully",
		"issue":   updated,
	})
}

// UpdateIssueStatus lets the assigned crew member move an issue through the
// rest of its lifecycle. A caller that is not the assignee gets a 403 and an
// unreachable target status a 400; neither mutates the record.
func UpdateIssueStatus(c *gin.Context) {
	caller, ok := callerObjectID(c)
	if !ok {
		return
	}

	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	target, valid := models.ParseIssueStatus(input.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := issueRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve issue"})
		}
		return
	}

	if issue.AssignedTo == nil || *issue.AssignedTo != caller {
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not assigned to this issue"})
		return
	}

	if !issue.Status.CanTransitionTo(target) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot move issue from " + string(issue.Status) + " to " + string(target)})
		return
	}

	updated, err := issueRepo.UpdateStatus(ctx, issueID, caller, issue.Status, target)
	if err != nil {
		if errors.Is(err, repositories.ErrStale) {
			c.JSON(http.StatusConflict, gin.H{"message": "Issue was modified concurrently, please retry"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update issue status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue status updated",
		"issue":   updated,
	})
}
