package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/server/http/dto"
)

// MemberHandler manages member endpoints.
type MemberHandler struct {
	facade MemberFacade
}

// NewMemberHandler constructs MemberHandler.
func NewMemberHandler(facade MemberFacade) *MemberHandler {
	return &MemberHandler{facade: facade}
}

// Create handles POST /members/.
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := req.ToModel()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	writeOutcome(c, h.facade.AddMember(c.Request.Context(), member))
}

// List handles GET /members/.
func (h *MemberHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortDetail(c, http.StatusBadRequest, dto.Describe(err))
		return
	}
	order, err := query.MemberOrder()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	writeOutcome(c, h.facade.Members(c.Request.Context(), order))
}

// Update handles PUT /members/{id}.
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	endDate, err := req.EndDate()
	if err != nil {
		abortDetail(c, http.StatusBadRequest, err.Error())
		return
	}
	id := model.MemberID(c.Param("id"))
	writeOutcome(c, h.facade.UpdateMember(c.Request.Context(), id, model.Plan(req.NewPlan), endDate))
}

// Delete handles DELETE /members/{id}.
func (h *MemberHandler) Delete(c *gin.Context) {
	id := model.MemberID(c.Param("id"))
	writeOutcome(c, h.facade.DeleteMember(c.Request.Context(), id))
}
