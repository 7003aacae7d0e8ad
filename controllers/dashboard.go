package controllers

import (
	"net/http"
	"strconv"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parsePagination(c *gin.Context) (page, recordsPerPage int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	recordsPerPage, err = strconv.Atoi(c.DefaultQuery("recordsPerPage", "10"))
	if err != nil || recordsPerPage < 1 {
		recordsPerPage = services.DefaultRecordsPerPage
	}
	return page, recordsPerPage
}

func applyDateFilter(q *gorm.DB, column, filter string) *gorm.DB {
	from, to, ok := services.DateFilterRange(filter, time.Now())
	if !ok {
		return q
	}
	return q.Where(column+" >= ? AND "+column+" < ?", from, to)
}

func paginationMeta(total, page, recordsPerPage int) gin.H {
	return gin.H{
		"page":           page,
		"recordsPerPage": recordsPerPage,
		"totalRecords":   total,
		"totalPages":     services.PageCount(total, recordsPerPage),
	}
}

// GetDashboard lists every conference the caller is involved in,
// with their effective role per conference.
func GetDashboard(c *gin.Context) {
	userID := c.GetInt("userID")
	page, per := parsePagination(c)

	// Conference IDs from every association the user has
	idSet := make(map[int]bool)

	var presidedIDs []int
	config.DB.Model(&models.Conference{}).
		Where("president_id = ?", userID).
		Pluck("conference_id", &presidedIDs)
	for _, id := range presidedIDs {
		idSet[id] = true
	}

	var memberships []models.CommitteeMember
	config.DB.Where("user_id = ?", userID).Find(&memberships)
	for _, m := range memberships {
		idSet[m.ConferenceID] = true
	}

	var authorships []models.SubmissionAuthor
	config.DB.Where("user_id = ?", userID).Find(&authorships)
	authoredSubmissions := make([]string, 0, len(authorships))
	for _, a := range authorships {
		authoredSubmissions = append(authoredSubmissions, a.SubmissionID)
	}
	if len(authoredSubmissions) > 0 {
		var confIDs []int
		config.DB.Model(&models.Submission{}).
			Where("submission_id IN ?", authoredSubmissions).
			Pluck("conference_id", &confIDs)
		for _, id := range confIDs {
			idSet[id] = true
		}
	}

	if len(idSet) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"conferences": []models.Conference{},
			"roles":       gin.H{},
			"pagination":  paginationMeta(0, page, per),
		})
		return
	}

	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	q := config.DB.Where("conference_id IN ?", ids)
	if status := c.Query("filterStatus"); status != "" {
		q = q.Where("status = ?", status)
	}
	q = applyDateFilter(q, "creation_date", c.Query("filterDate"))

	var conferences []models.Conference
	if err := q.Order("creation_date DESC").Find(&conferences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conferences"})
		return
	}

	// Per-submission author rows for role resolution, keyed by conference
	authorsByConference := make(map[int][]models.SubmissionAuthor)
	if len(authoredSubmissions) > 0 {
		var subs []models.Submission
		config.DB.Where("submission_id IN ?", authoredSubmissions).Find(&subs)
		confBySubmission := make(map[string]int, len(subs))
		for _, s := range subs {
			confBySubmission[s.SubmissionID] = s.ConferenceID
		}
		for _, a := range authorships {
			confID := confBySubmission[a.SubmissionID]
			authorsByConference[confID] = append(authorsByConference[confID], a)
		}
	}

	roles := make(map[int]string, len(conferences))
	for _, conf := range conferences {
		role := services.ResolveConferenceRole(userID, conf, memberships, authorsByConference[conf.ConferenceID])
		roles[conf.ConferenceID] = role.Label()
	}

	total := len(conferences)
	start, end := services.PageBounds(total, page, per)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"conferences": conferences[start:end],
		"roles":       roles,
		"pagination":  paginationMeta(total, page, per),
	})
}

// GetAuthorDashboard lists the caller's submissions and the conferences
// they were sent to.
func GetAuthorDashboard(c *gin.Context) {
	userID := c.GetInt("userID")
	page, per := parsePagination(c)

	var authorships []models.SubmissionAuthor
	config.DB.Where("user_id = ?", userID).Find(&authorships)
	if len(authorships) == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not an author on any submission"})
		return
	}

	ids := make([]string, 0, len(authorships))
	corresponding := make(map[string]bool)
	for _, a := range authorships {
		ids = append(ids, a.SubmissionID)
		if a.CorrespondingAuthor {
			corresponding[a.SubmissionID] = true
		}
	}

	q := config.DB.Preload("Conference").Preload("Authors.User").
		Where("submission_id IN ?", ids)
	if status := c.Query("filterStatus"); status != "" {
		q = q.Where("status = ?", status)
	}
	q = applyDateFilter(q, "submission_date", c.Query("filterDate"))

	var submissions []models.Submission
	if err := q.Order("submission_date DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	total := len(submissions)
	start, end := services.PageBounds(total, page, per)
	pageItems := submissions[start:end]

	items := make([]gin.H, 0, len(pageItems))
	for _, s := range pageItems {
		items = append(items, gin.H{
			"submission":           s,
			"conference":           s.Conference,
			"corresponding_author": corresponding[s.SubmissionID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": items,
		"pagination":  paginationMeta(total, page, per),
	})
}

// GetCommitteeDashboard lists the caller's committee memberships and the
// submissions assigned to them for review.
func GetCommitteeDashboard(c *gin.Context) {
	userID := c.GetInt("userID")
	page, per := parsePagination(c)

	var memberships []models.CommitteeMember
	config.DB.Preload("User").Where("user_id = ?", userID).Find(&memberships)
	if len(memberships) == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a committee member"})
		return
	}

	var reviews []models.Review
	config.DB.Where("reviewer_id = ?", userID).Find(&reviews)

	subIDs := make([]string, 0, len(reviews))
	reviewBySubmission := make(map[string]models.Review, len(reviews))
	for _, r := range reviews {
		subIDs = append(subIDs, r.SubmissionID)
		reviewBySubmission[r.SubmissionID] = r
	}

	var submissions []models.Submission
	if len(subIDs) > 0 {
		q := config.DB.Preload("Conference").Where("submission_id IN ?", subIDs)
		if status := c.Query("filterStatus"); status != "" {
			q = q.Where("status = ?", status)
		}
		q = applyDateFilter(q, "submission_date", c.Query("filterDate"))
		if err := q.Order("submission_date DESC").Find(&submissions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
			return
		}
	}

	total := len(submissions)
	start, end := services.PageBounds(total, page, per)
	pageItems := submissions[start:end]

	items := make([]gin.H, 0, len(pageItems))
	for _, s := range pageItems {
		r := reviewBySubmission[s.SubmissionID]
		items = append(items, gin.H{
			"submission":     s,
			"review_id":      r.ReviewID,
			"review_status":  r.ReviewStatus,
			"committee_type": r.CommitteeType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"memberships": memberships,
		"assignments": items,
		"pagination":  paginationMeta(total, page, per),
	})
}

// GetPresidentDashboard lists conferences the caller presides over and
// their submissions.
func GetPresidentDashboard(c *gin.Context) {
	userID := c.GetInt("userID")
	page, per := parsePagination(c)

	// Access is decided by the unfiltered association; filters may
	// legitimately leave an empty page
	var presided int64
	config.DB.Model(&models.Conference{}).
		Where("president_id = ?", userID).
		Count(&presided)
	if presided == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not preside over any conference"})
		return
	}

	q := config.DB.Preload("Topics").Where("president_id = ?", userID)
	if status := c.Query("filterStatus"); status != "" {
		q = q.Where("status = ?", status)
	}
	q = applyDateFilter(q, "creation_date", c.Query("filterDate"))

	var conferences []models.Conference
	if err := q.Order("creation_date DESC").Find(&conferences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conferences"})
		return
	}

	confIDs := make([]int, 0, len(conferences))
	for _, conf := range conferences {
		confIDs = append(confIDs, conf.ConferenceID)
	}

	var submissions []models.Submission
	if len(confIDs) > 0 {
		config.DB.Preload("Authors.User").
			Where("conference_id IN ?", confIDs).
			Order("submission_date DESC").
			Find(&submissions)
	}

	bySubmissionConf := make(map[int][]models.Submission)
	for _, s := range submissions {
		bySubmissionConf[s.ConferenceID] = append(bySubmissionConf[s.ConferenceID], s)
	}

	total := len(conferences)
	start, end := services.PageBounds(total, page, per)
	pageItems := conferences[start:end]

	items := make([]gin.H, 0, len(pageItems))
	for _, conf := range pageItems {
		items = append(items, gin.H{
			"conference":  conf,
			"submissions": bySubmissionConf[conf.ConferenceID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"conferences": items,
		"pagination":  paginationMeta(total, page, per),
	})
}
