package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/services"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var teamService = services.NewTeamService(nil)

type createSubmissionRequest struct {
	ConferenceID   int      `json:"conference_id" binding:"required"`
	Title          string   `json:"title" binding:"required"`
	CoauthorEmails []string `json:"coauthor_emails"`
}

// CreateSubmission registers a new paper with the caller as
// corresponding author
func CreateSubmission(c *gin.Context) {
	userID := c.GetInt("userID")

	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var conference models.Conference
	if err := config.DB.Where("conference_id = ?", req.ConferenceID).First(&conference).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}
	if time.Now().After(conference.EffectiveDeadline()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "deadline_passed",
			"error":   "The submission deadline has passed",
		})
		return
	}

	// Resolve co-authors up front so a bad email fails the whole request
	coauthors := make([]models.User, 0, len(req.CoauthorEmails))
	for _, email := range req.CoauthorEmails {
		email = strings.ToLower(utils.SanitizeInput(email))
		var user models.User
		if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found for co-author " + email})
			return
		}
		if user.UserID == userID {
			continue
		}
		coauthors = append(coauthors, user)
	}

	now := time.Now()
	submission := models.Submission{
		SubmissionID:   "SUB-" + strings.ToUpper(uuid.New().String()[:8]),
		ConferenceID:   conference.ConferenceID,
		Title:          utils.SanitizeInput(req.Title),
		Status:         models.SubmissionStatusSubmitted,
		SubmissionDate: now,
		UpdatedAt:      &now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		rows := []models.SubmissionAuthor{{
			SubmissionID:        submission.SubmissionID,
			UserID:              userID,
			CorrespondingAuthor: true,
			CreatedAt:           now,
		}}
		for _, u := range coauthors {
			rows = append(rows, models.SubmissionAuthor{
				SubmissionID: submission.SubmissionID,
				UserID:       u.UserID,
				CreatedAt:    now,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// correspondingAuthorGate loads the submission and checks the caller is
// its corresponding author.
func correspondingAuthorGate(c *gin.Context) (*models.Submission, bool) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Conference").Preload("Authors.User").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return nil, false
	}

	for _, a := range submission.Authors {
		if a.UserID == userID && a.CorrespondingAuthor {
			return &submission, true
		}
	}

	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"code":    "unauthorized",
		"error":   "Only the corresponding author can manage the team",
	})
	return nil, false
}

// GetSubmissionTeam lists the authors of a submission
func GetSubmissionTeam(c *gin.Context) {
	submission, ok := correspondingAuthorGate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"authors": submission.Authors,
	})
}

type addCoauthorRequest struct {
	Email string `json:"email" binding:"required"`
}

// AddCoauthor adds a registered user to the submission team
func AddCoauthor(c *gin.Context) {
	submission, ok := correspondingAuthorGate(c)
	if !ok {
		return
	}

	if time.Now().After(submission.Conference.EffectiveDeadline()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "deadline_passed",
			"error":   "The submission deadline has passed",
		})
		return
	}

	var req addCoauthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(utils.SanitizeInput(req.Email))
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found for this email"})
		return
	}

	for _, a := range submission.Authors {
		if a.UserID == user.UserID {
			c.JSON(http.StatusConflict, gin.H{"error": "User is already on the team"})
			return
		}
	}

	row := models.SubmissionAuthor{
		SubmissionID: submission.SubmissionID,
		UserID:       user.UserID,
		CreatedAt:    time.Now(),
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add co-author"})
		return
	}

	row.User = user
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"author":  row,
	})
}

// RemoveCoauthor removes a co-author from the team
func RemoveCoauthor(c *gin.Context) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	coauthorID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	switch err := teamService.RemoveCoauthor(submissionID, userID, coauthorID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Co-author removed",
		})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
	case errors.Is(err, services.ErrNotCorrespondingAuthor):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only the corresponding author can remove team members",
		})
	case errors.Is(err, services.ErrDeadlinePassed):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "deadline_passed",
			"error":   "The submission deadline has passed",
		})
	case errors.Is(err, services.ErrCannotRemoveCorresponding):
		c.JSON(http.StatusConflict, gin.H{"error": "The corresponding author cannot be removed"})
	case errors.Is(err, services.ErrAuthorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Author is not part of this submission"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove co-author"})
	}
}
