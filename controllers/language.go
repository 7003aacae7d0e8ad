package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var supportedLanguages = map[string]bool{
	"en": true,
	"fr": true,
	"es": true,
	"de": true,
	"ar": true,
}

const languageCookieMaxAge = 365 * 24 * 60 * 60

// SetLanguage stores the UI language in a one-year cookie
func SetLanguage(c *gin.Context) {
	lang := c.Query("lang")
	if !supportedLanguages[lang] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
		return
	}

	c.SetCookie("lang", lang, languageCookieMaxAge, "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"language":  lang,
		"returnUrl": c.Query("returnUrl"),
	})
}
