package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/votabienperu/comparador/internal/domain"
	"github.com/votabienperu/comparador/internal/utils"
)

// SearchResponse wraps search results.
type SearchResponse struct {
	Query   string                    `json:"query" example:"perez"`
	Kind    domain.Kind               `json:"kind" example:"all"`
	Results []domain.SearchableEntity `json:"results"`
}

// Search godoc
// @ID          searchEntities
// @Summary     Search legislators and candidates by name
// @Description Accent-insensitive name search used to pick entities to compare. A blank query returns no results.
// @Tags        Search
// @Produce     json
//
// @Param       q      query  string  true  "Name fragment"  example(perez)
// @Param       kind   query  string  false "Entity kind"    Enums(legislator, candidate, all) default(all)
// @Param       limit  query  int     false "Max results"    minimum(1) maximum(50) default(10)
//
// @Success     200  {object} handlers.SearchResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     502  {object} handlers.ErrorResponse "Data source unavailable"
// @Router      /search [get]
func (h *Handlers) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	kind := domain.Kind(strings.ToLower(strings.TrimSpace(c.Query("kind"))))
	if kind == "" {
		kind = domain.KindAll
	}
	limit := utils.AtoiDefault(c.Query("limit"), 0)

	results, err := h.srch.Search(c.Request.Context(), q, kind, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, SearchResponse{Query: q, Kind: kind, Results: results})
}
