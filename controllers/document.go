package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
)

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// UploadDocument stores the submission document
func UploadDocument(c *gin.Context) {
	storeDocument(c, false)
}

// UploadRevision replaces the document and marks the submission revised
func UploadRevision(c *gin.Context) {
	storeDocument(c, true)
}

func storeDocument(c *gin.Context, revision bool) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Authors").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	isAuthor := false
	for _, a := range submission.Authors {
		if a.UserID == userID {
			isAuthor = true
			break
		}
	}
	if !isAuthor {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "Only authors can upload documents",
		})
		return
	}

	// Get uploaded file
	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Validate file size
	if file.Size > utils.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	// Validate file type
	if !utils.IsAllowedDocument(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	dir := uploadPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	storedName := utils.GenerateStoredFilename(file.Filename)
	fullPath := filepath.Join(dir, storedName)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	oldPath := submission.DocumentPath

	now := time.Now()
	updates := map[string]interface{}{
		"document_path": fullPath,
		"updated_at":    now,
	}
	if revision {
		updates["status"] = models.SubmissionStatusRevisionSubmitted
	}

	if err := config.DB.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(updates).Error; err != nil {
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document record"})
		return
	}

	// Drop the replaced file once the record points at the new one
	if oldPath != nil && *oldPath != fullPath {
		os.Remove(*oldPath)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"document_path": fullPath,
		"original_name": file.Filename,
	})
}

// DownloadDocument streams the stored submission file
func DownloadDocument(c *gin.Context) {
	userID := c.GetInt("userID")
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.Preload("Conference").Preload("Authors").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"code":    "submission_not_found",
			"error":   "Submission not found",
		})
		return
	}

	if !canAccessDocument(&submission, userID) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"code":    "unauthorized",
			"error":   "You do not have access to this document",
		})
		return
	}

	if submission.DocumentPath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document has been uploaded"})
		return
	}
	path := *submission.DocumentPath
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document file is missing"})
		return
	}

	filename := fmt.Sprintf("%s%s", submission.SubmissionID, filepath.Ext(path))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.File(path)
}

// canAccessDocument allows authors, committee members of the conference
// and its president.
func canAccessDocument(submission *models.Submission, userID int) bool {
	for _, a := range submission.Authors {
		if a.UserID == userID {
			return true
		}
	}
	if submission.Conference.PresidentID == userID {
		return true
	}

	var count int64
	config.DB.Model(&models.CommitteeMember{}).
		Where("conference_id = ? AND user_id = ?", submission.ConferenceID, userID).
		Count(&count)
	return count > 0
}
