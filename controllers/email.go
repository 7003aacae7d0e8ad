package controllers

import (
	"fmt"
	"log"
	"net/http"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
)

func sendMailSafe(to []string, subject, body string) {
	if err := config.SendMail(to, subject, body); err != nil {
		log.Printf("email send failed (subject=%q to=%v): %v", subject, to, err)
	}
}

type sendEmailRequest struct {
	To      []string `json:"to" binding:"required"`
	Subject string   `json:"subject" binding:"required"`
	Body    string   `json:"body" binding:"required"`
}

// SendEmail performs an ad-hoc send through the configured mailer
func SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, addr := range req.To {
		if !utils.ValidateEmail(addr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient address: " + addr})
			return
		}
	}

	if err := config.SendMail(req.To, utils.SanitizeInput(req.Subject), req.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email sent",
	})
}

type submissionEmailRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
}

// submissionRecipients returns each distinct author address.
func submissionRecipients(submission *models.Submission) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range submission.Authors {
		if a.User.Email == "" || seen[a.User.Email] {
			continue
		}
		seen[a.User.Email] = true
		out = append(out, a.User.Email)
	}
	return out
}

// SendSubmissionIDEmail mails the submission reference to its authors
func SendSubmissionIDEmail(c *gin.Context) {
	var req submissionEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Conference").Preload("Authors.User").
		Where("submission_id = ?", req.SubmissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	recipients := submissionRecipients(&submission)
	if len(recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission has no reachable authors"})
		return
	}

	subject := fmt.Sprintf("Your submission to %s", submission.Conference.Name)
	body := fmt.Sprintf("Dear author,\n\nYour paper has been registered.\n\nConference: %s\nTitle: %s\nSubmission ID: %s\n\nKeep this ID for all future correspondence.\n\nBest regards,\nThe Conference Management Team",
		submission.Conference.Name, submission.Title, submission.SubmissionID)

	if err := config.SendMail(recipients, subject, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipients": len(recipients),
	})
}

// SendDecisionEmail mails the current decision status to the authors
func SendDecisionEmail(c *gin.Context) {
	var req submissionEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Conference").Preload("Authors.User").
		Where("submission_id = ?", req.SubmissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	recipients := submissionRecipients(&submission)
	if len(recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission has no reachable authors"})
		return
	}

	subject := fmt.Sprintf("Status of your submission to %s", submission.Conference.Name)
	body := fmt.Sprintf("Dear author,\n\nConference: %s\nTitle: %s\nSubmission ID: %s\nCurrent status: %s\n\nBest regards,\nThe Conference Management Team",
		submission.Conference.Name, submission.Title, submission.SubmissionID, submission.Status)

	if err := config.SendMail(recipients, subject, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipients": len(recipients),
	})
}
