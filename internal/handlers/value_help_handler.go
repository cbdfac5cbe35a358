package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"opportunityrisks/internal/services"
)

// ValueHelpHandler serves the static code lists used by risk forms.
type ValueHelpHandler struct {
	valueHelpService services.ValueHelpServicer
}

// NewValueHelpHandler creates a new ValueHelpHandler.
func NewValueHelpHandler(valueHelpService services.ValueHelpServicer) *ValueHelpHandler {
	return &ValueHelpHandler{valueHelpService: valueHelpService}
}

// GetValueHelp returns one code list.
// @Summary     Get a value help list
// @Description Returns the code/text pairs of impact-levels, probability-levels or status-types
// @Tags        value-help
// @Produce     json
// @Param       name path string true "List name"
// @Success     200 {object} map[string][]models.CodeText "Code list"
// @Failure     404 {object} ErrorResponse "Unknown list"
// @Router      /value-help/{name} [get]
func (h *ValueHelpHandler) GetValueHelp(c *gin.Context) {
	list, err := h.valueHelpService.List(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"values": list})
}

// GetValueHelpNames lists the available code lists.
// @Summary     List value help names
// @Tags        value-help
// @Produce     json
// @Success     200 {object} map[string][]string "List names"
// @Router      /value-help [get]
func (h *ValueHelpHandler) GetValueHelpNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lists": h.valueHelpService.Names()})
}
