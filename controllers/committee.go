package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// presidedConference loads the conference and checks the caller owns it.
func presidedConference(c *gin.Context) (*models.Conference, bool) {
	userID := c.GetInt("userID")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conference ID"})
		return nil, false
	}

	var conference models.Conference
	if err := config.DB.Where("conference_id = ?", id).First(&conference).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conference not found"})
		return nil, false
	}
	if conference.PresidentID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the conference president can manage committees"})
		return nil, false
	}
	return &conference, true
}

// GetCommittee returns the PC and SC rosters of a conference
func GetCommittee(c *gin.Context) {
	conference, ok := presidedConference(c)
	if !ok {
		return
	}

	var members []models.CommitteeMember
	if err := config.DB.Preload("User").
		Where("conference_id = ?", conference.ConferenceID).
		Order("committee_type, created_at").
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load committee"})
		return
	}

	byType := map[string][]models.CommitteeMember{
		models.CommitteeTypePC: {},
		models.CommitteeTypeSC: {},
	}
	for _, m := range members {
		byType[m.CommitteeType] = append(byType[m.CommitteeType], m)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"program_committee":  byType[models.CommitteeTypePC],
		"steering_committee": byType[models.CommitteeTypeSC],
	})
}

type addMemberRequest struct {
	Email          string `json:"email"`
	CommitteeType  string `json:"committee_type"`
	CommitteeName  string `json:"committee_name"`
	AcademicTitle  string `json:"academic_title"`
	ExpertiseAreas string `json:"expertise_areas"`
	Biography      string `json:"biography"`
}

// AddCommitteeMember adds an existing user to a committee
func AddCommitteeMember(c *gin.Context) {
	conference, ok := presidedConference(c)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	errs := gin.H{}
	req.Email = strings.ToLower(utils.SanitizeInput(req.Email))
	if !utils.ValidateEmail(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if !models.IsValidCommitteeType(req.CommitteeType) {
		errs["committeeType"] = "Committee type must be PC or SC"
	}
	if strings.TrimSpace(req.AcademicTitle) == "" {
		errs["academicTitle"] = "Academic title is required"
	}
	if strings.TrimSpace(req.ExpertiseAreas) == "" {
		errs["expertiseAreas"] = "Expertise areas are required"
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found for this email"})
		return
	}

	var existing models.CommitteeMember
	err := config.DB.Where("conference_id = ? AND user_id = ? AND committee_type = ?",
		conference.ConferenceID, user.UserID, req.CommitteeType).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this committee"})
		return
	}

	member := models.CommitteeMember{
		ConferenceID:   conference.ConferenceID,
		UserID:         user.UserID,
		CommitteeType:  req.CommitteeType,
		CommitteeName:  utils.SanitizeInput(req.CommitteeName),
		AcademicTitle:  utils.SanitizeInput(req.AcademicTitle),
		ExpertiseAreas: utils.SanitizeInput(req.ExpertiseAreas),
		Biography:      utils.SanitizeInput(req.Biography),
		CreatedAt:      time.Now(),
	}
	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add committee member"})
		return
	}

	// Notify the new member, best effort
	subject := fmt.Sprintf("Committee invitation: %s", conference.Name)
	body := fmt.Sprintf("Dear %s %s,\n\nYou have been added to a committee of %s (%s).\n\nBest regards,\nThe Conference Management Team",
		user.FirstName, user.LastName, conference.Name, conference.Acronym)
	sendMailSafe([]string{user.Email}, subject, body)

	member.User = user
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"member":  member,
	})
}

type updateMemberRequest struct {
	AcademicTitle  *string `json:"academic_title"`
	ExpertiseAreas *string `json:"expertise_areas"`
	Biography      *string `json:"biography"`
}

// UpdateCommitteeMember edits title, expertise and biography only
func UpdateCommitteeMember(c *gin.Context) {
	conference, ok := presidedConference(c)
	if !ok {
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var member models.CommitteeMember
	if err := config.DB.Where("member_id = ? AND conference_id = ?", memberID, conference.ConferenceID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Committee member not found"})
		return
	}

	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AcademicTitle != nil {
		member.AcademicTitle = utils.SanitizeInput(*req.AcademicTitle)
	}
	if req.ExpertiseAreas != nil {
		member.ExpertiseAreas = utils.SanitizeInput(*req.ExpertiseAreas)
	}
	if req.Biography != nil {
		member.Biography = utils.SanitizeInput(*req.Biography)
	}

	if err := config.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update committee member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"member":  member,
	})
}

// DeleteCommitteeMember removes a member unless they are the
// responsible SC member
func DeleteCommitteeMember(c *gin.Context) {
	conference, ok := presidedConference(c)
	if !ok {
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var member models.CommitteeMember
	if err := config.DB.Where("member_id = ? AND conference_id = ?", memberID, conference.ConferenceID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Committee member not found"})
		return
	}

	if member.CommitteeType == models.CommitteeTypeSC && member.IsResponsible {
		c.JSON(http.StatusConflict, gin.H{"error": "Assign another responsible SC member before removing this one"})
		return
	}

	if err := config.DB.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove committee member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Committee member removed",
	})
}

// SetResponsibleMember marks one SC member as responsible. The unset
// and set run in a single transaction so exactly one responsible
// member survives concurrent calls.
func SetResponsibleMember(c *gin.Context) {
	conference, ok := presidedConference(c)
	if !ok {
		return
	}

	memberID, err := strconv.Atoi(c.Param("memberId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var member models.CommitteeMember
	if err := config.DB.Where("member_id = ? AND conference_id = ?", memberID, conference.ConferenceID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Committee member not found"})
		return
	}
	if member.CommitteeType != models.CommitteeTypeSC {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only steering committee members can be responsible"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CommitteeMember{}).
			Where("conference_id = ? AND committee_type = ?", conference.ConferenceID, models.CommitteeTypeSC).
			Update("is_responsible", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.CommitteeMember{}).
			Where("member_id = ?", member.MemberID).
			Update("is_responsible", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set responsible member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Responsible member updated",
	})
}
