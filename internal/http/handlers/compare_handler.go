// Comparison HTTP handlers.
//
// This file exposes the comparison endpoints:
//   - POST /compare   (JSON body)
//   - GET  /compare   (query string, shareable links)
//
// Both run the same pipeline. Responses carry a weak ETag computed from the
// comparison items (the comparison date is excluded), so repeated requests
// against unchanged data can be answered with 304 Not Modified.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/votabienperu/comparador/internal/domain"
	"github.com/votabienperu/comparador/internal/services"
	"github.com/votabienperu/comparador/internal/utils"
)

// Comparer runs a comparison. Implementations must be safe for concurrent
// use and honor ctx.
type Comparer interface {
	Compare(ctx context.Context, req domain.ComparisonRequest) (*domain.ComparisonResponse, error)
}

// Searcher finds entities to fill comparison slots.
type Searcher interface {
	Search(ctx context.Context, query string, kind domain.Kind, limit int) ([]domain.SearchableEntity, error)
}

// Handlers groups the HTTP endpoints of the comparator.
type Handlers struct {
	cmp  Comparer
	srch Searcher
}

// New constructs Handlers bound to the given services.
func New(cmp Comparer, srch Searcher) *Handlers {
	return &Handlers{cmp: cmp, srch: srch}
}

// CompareRequest is the JSON payload of POST /compare.
type CompareRequest struct {
	// Mode is "legislator" or "candidate".
	Mode string `json:"mode" example:"legislator"`
	// IDs lists 2 to 4 entity ids; duplicates are collapsed.
	IDs []string `json:"ids" example:"L1,L2"`
	// Filters optionally narrow which ids resolve.
	Filters domain.Filters `json:"filters"`
}

func (r CompareRequest) toDomain() domain.ComparisonRequest {
	return domain.ComparisonRequest{
		Mode:    domain.Kind(strings.ToLower(strings.TrimSpace(r.Mode))),
		IDs:     r.IDs,
		Filters: r.Filters,
	}
}

// etagInput is the part of a response that identifies its content.
type etagInput struct {
	TotalRequested int                     `json:"total_requested"`
	TotalAvailable int                     `json:"total_available"`
	Items          []domain.ComparisonItem `json:"items"`
}

// PostCompare godoc
// @ID          postCompare
// @Summary     Compare legislators or candidates
// @Description Compares 2 to 4 entities of one kind side by side. Each requested id yields one item
// @Description whose status is available, no_metrics or not_found. Supports weak ETag via If-None-Match.
// @Tags        Compare
// @Accept      json
// @Produce     json
//
// @Param       If-None-Match  header  string                   false "Return 304 if ETag matches"
// @Param       body           body    handlers.CompareRequest  true  "Comparison request"
//
// @Success     200  {object} domain.ComparisonResponse
// @Header      200  {string} ETag  "Weak ETag over the items"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     502  {object} handlers.ErrorResponse "Data source unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /compare [post]
func (h *Handlers) PostCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	h.compare(c, req.toDomain())
}

// GetCompare godoc
// @ID          getCompare
// @Summary     Compare legislators or candidates (query form)
// @Description Same as POST /compare with parameters in the query string. ids accepts a comma-separated
// @Description list and may be repeated.
// @Tags        Compare
// @Produce     json
//
// @Param       If-None-Match   header  string  false "Return 304 if ETag matches"
// @Param       mode            query   string  true  "Entity kind"  Enums(legislator, candidate)
// @Param       ids             query   string  true  "Comma-separated ids"  example(L1,L2)
// @Param       chamber         query   string  false "Legislators: chamber"  Enums(congress, senate, deputies)
// @Param       district_id     query   string  false "District id"
// @Param       party_id        query   string  false "Party id"
// @Param       candidacy_type  query   string  false "Candidates: office"  Enums(president, vice_president, senator, deputy)
// @Param       process_id      query   string  false "Candidates: electoral process id"
//
// @Success     200  {object} domain.ComparisonResponse
// @Header      200  {string} ETag  "Weak ETag over the items"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     502  {object} handlers.ErrorResponse "Data source unavailable"
// @Router      /compare [get]
func (h *Handlers) GetCompare(c *gin.Context) {
	req := CompareRequest{
		Mode: c.Query("mode"),
		IDs:  utils.SplitList(c.QueryArray("ids")),
		Filters: domain.Filters{
			Chamber:       domain.Chamber(strings.TrimSpace(c.Query("chamber"))),
			DistrictID:    strings.TrimSpace(c.Query("district_id")),
			PartyID:       strings.TrimSpace(c.Query("party_id")),
			CandidacyType: domain.CandidacyType(strings.TrimSpace(c.Query("candidacy_type"))),
			ProcessID:     strings.TrimSpace(c.Query("process_id")),
		},
	}
	h.compare(c, req.toDomain())
}

func (h *Handlers) compare(c *gin.Context, req domain.ComparisonRequest) {
	if err := checkFilters(req.Filters); err != nil {
		failErr(c, err)
		return
	}
	resp, err := h.cmp.Compare(c.Request.Context(), req)
	if err != nil {
		failErr(c, err)
		return
	}
	okConditional(c, etagInput{
		TotalRequested: resp.TotalRequested,
		TotalAvailable: resp.TotalAvailable,
		Items:          resp.Items,
	}, resp)
}

// checkFilters rejects enum filters with unknown values.
func checkFilters(f domain.Filters) error {
	if f.Chamber != "" && !f.Chamber.Valid() {
		return &services.ValidationError{Field: "filters.chamber", Reason: "unknown chamber " + string(f.Chamber)}
	}
	if f.CandidacyType != "" && !f.CandidacyType.Valid() {
		return &services.ValidationError{Field: "filters.candidacy_type", Reason: "unknown candidacy type " + string(f.CandidacyType)}
	}
	return nil
}
