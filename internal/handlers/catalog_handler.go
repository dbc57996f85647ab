package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashk/crickstand/internal/helpers"
	"github.com/avinashk/crickstand/internal/models"
)

type TeamRequest struct {
	Name      string `json:"name" binding:"required"`
	ShortName string `json:"short_name" binding:"required"`
}

type StadiumRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city" binding:"required"`
}

func CreateTeam(c *gin.Context) {
	var req TeamRequest
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

	team := models.Team{
		ID:        uuid.New(),
		Name:      req.Name,
		ShortName: req.ShortName,
	}

	if err := gormDB.Create(&team).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create team.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Team created successfully.",
		"team_id": team.ID,
	})
}

func ListTeams(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var teams []models.Team
	if err := gormDB.Order("name asc").Find(&teams).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving teams.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func CreateStadium(c *gin.Context) {
	var req StadiumRequest
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

	stadium := models.Stadium{
		ID:   uuid.New(),
		Name: req.Name,
		City: req.City,
	}

	if err := gormDB.Create(&stadium).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create stadium.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Stadium created successfully.",
		"stadium_id": stadium.ID,
	})
}

func ListStadiums(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var stadiums []models.Stadium
	if err := gormDB.Order("name asc").Find(&stadiums).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stadiums.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stadiums": stadiums})
}
