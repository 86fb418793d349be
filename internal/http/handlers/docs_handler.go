package handlers

import (
	"net/http"

	"manara/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:id/e-ticket
func GetTripETicketPDF(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	pdf, filename, err := docsService(c).GenerateETicket(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
