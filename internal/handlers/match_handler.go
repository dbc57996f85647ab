package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/helpers"
	"github.com/avinashk/crickstand/internal/models"
)

type MatchRequest struct {
	Team1ID   uuid.UUID `json:"team1_id" binding:"required"`
	Team2ID   uuid.UUID `json:"team2_id" binding:"required"`
	StadiumID uuid.UUID `json:"stadium_id" binding:"required"`
	MatchDate string    `json:"match_date" binding:"required"`
}

type UpdateMatchRequest struct {
	StadiumID *uuid.UUID          `json:"stadium_id"`
	MatchDate *string             `json:"match_date"`
	Status    *models.MatchStatus `json:"status"`
}

// MatchResponse is the one canonical match shape handed to clients. Every
// read path goes through loadMatch/matchResponse so nobody downstream has
// to guess which team fields are populated.
type MatchResponse struct {
	ID        uuid.UUID          `json:"id"`
	Team1     TeamSummary        `json:"team1"`
	Team2     TeamSummary        `json:"team2"`
	Stadium   StadiumSummary     `json:"stadium"`
	MatchDate time.Time          `json:"match_date"`
	Status    models.MatchStatus `json:"status"`
}

type TeamSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
}

type StadiumSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

func matchResponse(match models.Match) MatchResponse {
	return MatchResponse{
		ID:        match.ID,
		Team1:     TeamSummary{ID: match.Team1.ID, Name: match.Team1.Name, ShortName: match.Team1.ShortName},
		Team2:     TeamSummary{ID: match.Team2.ID, Name: match.Team2.Name, ShortName: match.Team2.ShortName},
		Stadium:   StadiumSummary{ID: match.Stadium.ID, Name: match.Stadium.Name, City: match.Stadium.City},
		MatchDate: match.MatchDate,
		Status:    match.Status,
	}
}

func loadMatch(db *gorm.DB, id string) (*models.Match, error) {
	var match models.Match
	err := db.Preload("Team1").Preload("Team2").Preload("Stadium").
		Where("id = ?", id).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func CreateMatch(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	matchDate, err := time.Parse(time.RFC3339, req.MatchDate)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match date format.")
		return
	}

	if req.Team1ID == req.Team2ID {
		helpers.RespondWithError(c, http.StatusBadRequest, "A match needs two different teams.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	for _, teamID := range []uuid.UUID{req.Team1ID, req.Team2ID} {
		var team models.Team
		if err := gormDB.Where("id = ?", teamID).First(&team).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Team not found.")
			return
		}
	}

	var stadium models.Stadium
	if err := gormDB.Where("id = ?", req.StadiumID).First(&stadium).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Stadium not found.")
		return
	}

	match := models.Match{
		ID:        uuid.New(),
		Team1ID:   req.Team1ID,
		Team2ID:   req.Team2ID,
		StadiumID: req.StadiumID,
		MatchDate: matchDate,
		Status:    models.MatchUpcoming,
	}

	if err := gormDB.Create(&match).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create match.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Match created successfully.",
		"match_id": match.ID,
	})
}

// UpdateMatch edits a match. Once play has begun only the status may
// change.
func UpdateMatch(c *gin.Context) {
	matchID := c.Param("id")

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var match models.Match
	if err := gormDB.Where("id = ?", matchID).First(&match).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving match.")
		return
	}

	started := match.Status != models.MatchUpcoming
	if started && (req.StadiumID != nil || req.MatchDate != nil) {
		helpers.RespondWithError(c, http.StatusConflict, "Only the status can change once a match has started.")
		return
	}

	if req.Status != nil {
		if !models.ValidMatchStatus(*req.Status) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match status.")
			return
		}
		match.Status = *req.Status
	}
	if req.StadiumID != nil {
		match.StadiumID = *req.StadiumID
	}
	if req.MatchDate != nil {
		matchDate, err := time.Parse(time.RFC3339, *req.MatchDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match date format.")
			return
		}
		match.MatchDate = matchDate
	}

	if err := gormDB.Save(&match).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update match.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match updated successfully."})
}

func ListMatches(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	query := gormDB.Preload("Team1").Preload("Team2").Preload("Stadium").Order("match_date asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var matches []models.Match
	if err := query.Find(&matches).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving matches.")
		return
	}

	responses := make([]MatchResponse, 0, len(matches))
	for _, match := range matches {
		responses = append(responses, matchResponse(match))
	}

	c.JSON(http.StatusOK, gin.H{"matches": responses})
}

func GetMatch(c *gin.Context) {
	matchID := c.Param("id")

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	match, err := loadMatch(gormDB, matchID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving match.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": matchResponse(*match)})
}
