package controllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/utils"

	"github.com/gin-gonic/gin"
)

const resetCodeTTL = 10 * time.Minute

var (
	resetCodeGenerator = func() (string, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%06d", n.Int64()), nil
	}

	sendMailFunc                              = config.SendMail
	passwordResetRepo passwordResetRepository = &gormPasswordResetRepository{}
)

type passwordResetRepository interface {
	FindUserByEmail(email string) (*models.User, error)
	InvalidateCodes(email string, now time.Time) error
	CreateCode(code *models.PasswordResetCode) error
	FindActiveCode(email, code string, now time.Time) (*models.PasswordResetCode, error)
	MarkVerified(codeID int) error
	ConsumeCode(codeID int) error
	UpdateUserPassword(userID int, hashedPassword string, now time.Time) error
}

type gormPasswordResetRepository struct{}

func (r *gormPasswordResetRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormPasswordResetRepository) InvalidateCodes(email string, now time.Time) error {
	return config.DB.Model(&models.PasswordResetCode{}).
		Where("email = ? AND used = ?", email, false).
		Updates(map[string]interface{}{
			"used":       true,
			"expires_at": now,
		}).Error
}

func (r *gormPasswordResetRepository) CreateCode(code *models.PasswordResetCode) error {
	return config.DB.Create(code).Error
}

func (r *gormPasswordResetRepository) FindActiveCode(email, code string, now time.Time) (*models.PasswordResetCode, error) {
	var row models.PasswordResetCode
	err := config.DB.Where("email = ? AND code = ? AND used = ? AND expires_at > ?", email, code, false, now).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gormPasswordResetRepository) MarkVerified(codeID int) error {
	return config.DB.Model(&models.PasswordResetCode{}).
		Where("code_id = ?", codeID).
		Update("verified", true).Error
}

func (r *gormPasswordResetRepository) ConsumeCode(codeID int) error {
	return config.DB.Model(&models.PasswordResetCode{}).
		Where("code_id = ?", codeID).
		Update("used", true).Error
}

func (r *gormPasswordResetRepository) UpdateUserPassword(userID int, hashedPassword string, now time.Time) error {
	return config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"password":   hashedPassword,
			"updated_at": now,
		}).Error
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type newPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RequestPasswordReset mails a 6-digit reset code. The response does not
// reveal whether the address has an account.
func RequestPasswordReset(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
		})
		return
	}

	req.Email = utils.SanitizeInput(req.Email)
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid email format",
		})
		return
	}

	response := gin.H{
		"success": true,
		"message": "If the address is registered, a reset code has been sent",
	}

	user, err := passwordResetRepo.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	code, err := resetCodeGenerator()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate reset code",
		})
		return
	}

	now := time.Now()
	if err := passwordResetRepo.InvalidateCodes(req.Email, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to prepare reset code",
		})
		return
	}

	row := models.PasswordResetCode{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: now.Add(resetCodeTTL),
		CreatedAt: now,
	}
	if err := passwordResetRepo.CreateCode(&row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to store reset code",
		})
		return
	}

	subject := "Your password reset code"
	body := fmt.Sprintf("Dear %s %s,\n\nYour password reset code is: %s\nIt expires in 10 minutes.\n\nIf you did not request a reset, you can ignore this message.",
		user.FirstName, user.LastName, code)
	if err := sendMailFunc([]string{user.Email}, subject, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to send reset email",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// VerifyResetCode checks a code before the user picks a new password.
func VerifyResetCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
		})
		return
	}

	row, err := passwordResetRepo.FindActiveCode(utils.SanitizeInput(req.Email), utils.SanitizeInput(req.Code), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or expired reset code",
		})
		return
	}

	if err := passwordResetRepo.MarkVerified(row.CodeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to verify reset code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Code verified",
	})
}

// SetNewPassword completes the reset flow and consumes the code.
func SetNewPassword(c *gin.Context) {
	var req newPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
		})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Passwords do not match",
		})
		return
	}
	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   msg,
		})
		return
	}

	now := time.Now()
	req.Email = utils.SanitizeInput(req.Email)

	row, err := passwordResetRepo.FindActiveCode(req.Email, utils.SanitizeInput(req.Code), now)
	if err != nil || !row.Verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or expired reset code",
		})
		return
	}

	user, err := passwordResetRepo.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or expired reset code",
		})
		return
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update password",
		})
		return
	}

	if err := passwordResetRepo.UpdateUserPassword(user.UserID, hashed, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update password",
		})
		return
	}

	if err := passwordResetRepo.ConsumeCode(row.CodeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to finalize reset",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}
