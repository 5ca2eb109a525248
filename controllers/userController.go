package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetCrews returns the identities of all crew members so an admin can pick
// an assignment target.
func GetCrews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	crews, err := userRepo.FindCrews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve crew members"})
		return
	}

	out := make([]gin.H, 0, len(crews))
	for _, crew := range crews {
		out = append(out, gin.H{
			"id":    crew.ID,
			"name":  crew.Name,
			"email": crew.Email,
		})
	}

	c.JSON(http.StatusOK, out)
}
