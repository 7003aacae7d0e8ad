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
	"gorm.io/gorm"
)

var conferenceService = services.NewConferenceService(nil)

// GetConferences returns all conferences
func GetConferences(c *gin.Context) {
	q := config.DB.Preload("Topics").Preload("President")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var conferences []models.Conference
	if err := q.Order("creation_date DESC").Find(&conferences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"conferences": conferences,
	})
}

// GetConference returns single conference detail
func GetConference(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	var conference models.Conference
	if err := config.DB.Preload("Topics").Preload("President").
		Where("conference_id = ?", id).
		First(&conference).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"conference": conference,
	})
}

// CreateConference bootstraps a conference with topics and committee
func CreateConference(c *gin.Context) {
	userID := c.GetInt("userID")

	var input services.CreateConferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conference, err := conferenceService.Create(userID, input)
	if err != nil {
		var verrs services.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  verrs,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conference"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"conference": conference,
	})
}

type updateConferenceRequest struct {
	Name               *string                `json:"name"`
	Theme              *string                `json:"theme"`
	Type               *string                `json:"type"`
	Website            *string                `json:"website"`
	Location           *string                `json:"location"`
	StartDate          *time.Time             `json:"start_date"`
	EndDate            *time.Time             `json:"end_date"`
	SubmissionDeadline *time.Time             `json:"submission_deadline"`
	ExtensionDate      *time.Time             `json:"extension_date"`
	Status             *string                `json:"status"`
	Topics             *[]services.TopicInput `json:"topics"`
}

// UpdateConference modifies conference details, president only
func UpdateConference(c *gin.Context) {
	userID := c.GetInt("userID")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	var conference models.Conference
	if err := config.DB.Where("conference_id = ?", id).First(&conference).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}
	if conference.PresidentID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the conference president can modify it"})
		return
	}

	var req updateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		conference.Name = utils.SanitizeInput(*req.Name)
	}
	if req.Theme != nil {
		conference.Theme = utils.SanitizeInput(*req.Theme)
	}
	if req.Type != nil {
		if !models.IsValidConferenceType(*req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"type": "Type must be Physical, Virtual or Hybrid"},
			})
			return
		}
		conference.Type = *req.Type
	}
	if req.Website != nil {
		if *req.Website != "" && !utils.ValidateURL(*req.Website) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"website": "Website must be a valid URL"},
			})
			return
		}
		conference.Website = req.Website
	}
	if req.Location != nil {
		conference.Location = utils.SanitizeInput(*req.Location)
	}
	if req.StartDate != nil {
		conference.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		conference.EndDate = *req.EndDate
	}
	if req.SubmissionDeadline != nil {
		conference.SubmissionDeadline = *req.SubmissionDeadline
	}
	if req.ExtensionDate != nil {
		if req.ExtensionDate.Before(conference.SubmissionDeadline) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  gin.H{"extensionDate": "Extension date must not be before the submission deadline"},
			})
			return
		}
		conference.ExtensionDate = req.ExtensionDate
	}
	if req.Status != nil {
		conference.Status = *req.Status
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&conference).Error; err != nil {
			return err
		}
		if req.Topics == nil {
			return nil
		}

		// Topics are replaced wholesale
		if err := tx.Where("conference_id = ?", conference.ConferenceID).
			Delete(&models.ConferenceTopic{}).Error; err != nil {
			return err
		}
		for _, t := range *req.Topics {
			topic := models.ConferenceTopic{
				ConferenceID: conference.ConferenceID,
				TopicName:    utils.SanitizeInput(t.Name),
			}
			if err := tx.Create(&topic).Error; err != nil {
				return err
			}
			for _, sub := range t.Subtopics {
				parentID := topic.TopicID
				child := models.ConferenceTopic{
					ConferenceID:  conference.ConferenceID,
					TopicName:     utils.SanitizeInput(sub),
					ParentTopicID: &parentID,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"conference": conference,
	})
}

// DeleteConference removes a conference, president only
func DeleteConference(c *gin.Context) {
	userID := c.GetInt("userID")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return
	}

	var conference models.Conference
	if err := config.DB.Where("conference_id = ?", id).First(&conference).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return
	}
	if conference.PresidentID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the conference president can delete it"})
		return
	}

	if err := config.DB.Delete(&conference).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Conference deleted",
	})
}
