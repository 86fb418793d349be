package handlers

import (
	"net/http"
	"strings"

	"manara/internal/domain/models"
	"manara/internal/http/middleware"
	"manara/internal/repositories"
	"manara/internal/utils"

	"github.com/gin-gonic/gin"
)

type saccoPayload struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registrationNumber" binding:"required"`
	BaseTown           string `json:"baseTown"`
	ContactPhone       string `json:"contactPhone"`
}

// GET /api/saccos?q=&page=&limit=
func GetSaccos(c *gin.Context) {
	repo := repositories.SaccoRepository{}
	list, err := repo.List(strings.TrimSpace(c.Query("q")), queryInt(c, "page", 1), queryInt(c, "limit", 50))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/saccos/:id
func GetSaccoByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	s, err := repositories.SaccoRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// POST /api/saccos
func CreateSacco(c *gin.Context) {
	var payload saccoPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	phone := utils.NormalizePhone(payload.ContactPhone)
	s := models.Sacco{
		Name:               utils.NormalizeSpace(payload.Name),
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(payload.RegistrationNumber)),
		OwnerID:            middleware.UserID(c),
		BaseTown:           utils.NormalizeSpace(payload.BaseTown),
		ContactPhone:       phone,
		Status:             models.SaccoStatusActive,
	}

	id, err := repositories.SaccoRepository{}.Create(s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "sacco registered", "id": id})
}

// PUT /api/saccos/:id
func UpdateSacco(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var payload saccoPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	repo := repositories.SaccoRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	existing.Name = utils.NormalizeSpace(payload.Name)
	existing.RegistrationNumber = strings.ToUpper(strings.TrimSpace(payload.RegistrationNumber))
	existing.BaseTown = utils.NormalizeSpace(payload.BaseTown)
	existing.ContactPhone = utils.NormalizePhone(payload.ContactPhone)

	if err := repo.Update(existing); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sacco updated"})
}

// PUT /api/saccos/:id/suspend and /api/saccos/:id/activate
func SetSaccoStatus(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := (repositories.SaccoRepository{}).SetStatus(id, status); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "sacco status set to " + status})
	}
}

// DELETE /api/saccos/:id
func DeleteSacco(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.SaccoRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sacco deleted"})
}
