package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/services"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
)

var decisionService = services.NewDecisionService(nil)

type assignReviewerRequest struct {
	ReviewerID    int    `json:"reviewer_id" binding:"required"`
	CommitteeType string `json:"committee_type" binding:"required"`
}

// AssignReviewer creates a pending review for a committee member
func AssignReviewer(c *gin.Context) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var req assignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidCommitteeType(req.CommitteeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Committee type must be PC or SC"})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	// Caller must sit on a committee of this conference
	var caller models.CommitteeMember
	if err := config.DB.Where("conference_id = ? AND user_id = ?", submission.ConferenceID, userID).
		First(&caller).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only committee members can assign reviewers",
		})
		return
	}

	// The reviewer must belong to the named committee
	var reviewer models.CommitteeMember
	if err := config.DB.Where("conference_id = ? AND user_id = ? AND committee_type = ?",
		submission.ConferenceID, req.ReviewerID, req.CommitteeType).
		First(&reviewer).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reviewer is not a member of that committee"})
		return
	}

	var existing models.Review
	err := config.DB.Where("submission_id = ? AND reviewer_id = ?", submissionID, req.ReviewerID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Reviewer is already assigned to this submission"})
		return
	}

	now := time.Now()
	review := models.Review{
		SubmissionID:  submissionID,
		ReviewerID:    req.ReviewerID,
		CommitteeType: req.CommitteeType,
		ReviewStatus:  models.ReviewStatusPending,
		CreatedAt:     now,
		UpdatedAt:     &now,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign reviewer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"review":  review,
	})
}

type submitReviewRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comments string `json:"comments"`
}

// SubmitReview records a reviewer's decision and comments
func SubmitReview(c *gin.Context) {
	userID := c.GetInt("userID")
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var review models.Review
	if err := config.DB.Where("review_id = ?", reviewID).First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.ReviewerID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only the assigned reviewer can submit this review",
		})
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := utils.SanitizeInput(req.Decision)
	comments := utils.SanitizeInput(req.Comments)

	now := time.Now()
	review.ReviewDecision = &decision
	review.ReviewComments = &comments
	review.ReviewStatus = models.ReviewStatusCompleted
	review.UpdatedAt = &now

	if err := config.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
	})
}

// GetDecision shows the review state to the responsible SC member
func GetDecision(c *gin.Context) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Conference").Preload("Reviews.Reviewer").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	if !decisionService.CanDecide(&submission, userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only the responsible SC member can view the decision state",
		})
		return
	}

	completed := 0
	for _, r := range submission.Reviews {
		if r.ReviewStatus == models.ReviewStatusCompleted {
			completed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"submission":        submission,
		"reviews":           submission.Reviews,
		"completed_reviews": completed,
		"total_reviews":     len(submission.Reviews),
	})
}

type decisionRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comments string `json:"comments"`
}

// PostDecision records the final decision on a submission
func PostDecision(c *gin.Context) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := decisionService.Decide(submissionID, userID, req.Decision, utils.SanitizeInput(req.Comments))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"submission": submission,
		})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
	case errors.Is(err, services.ErrNotResponsibleSC):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only the responsible SC member can decide",
		})
	case errors.Is(err, services.ErrReviewsIncomplete):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"code":    "reviews_incomplete",
			"error":   "All assigned reviews must be completed first",
		})
	case errors.Is(err, services.ErrEmptyDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A decision value is required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
	}
}
