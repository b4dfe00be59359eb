package dto

import (
	"github.com/polkiloo/gymrat/internal/domain/model"
)

// CreateMemberRequest describes POST /members payload.
type CreateMemberRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Plan      string `json:"plan" binding:"required"`
	StartDate string `json:"start_date" binding:"omitempty,isodate"`
	EndDate   string `json:"end_date" binding:"omitempty,isodate"`
}

// ToModel converts the payload, leaving absent dates nil.
func (r CreateMemberRequest) ToModel() (model.NewMember, error) {
	start, err := optionalDate(r.StartDate)
	if err != nil {
		return model.NewMember{}, err
	}
	end, err := optionalDate(r.EndDate)
	if err != nil {
		return model.NewMember{}, err
	}
	return model.NewMember{
		Name:      r.Name,
		Phone:     r.Phone,
		Plan:      model.Plan(r.Plan),
		StartDate: start,
		EndDate:   end,
	}, nil
}

// UpdateMemberRequest describes PUT /members/{id} payload.
type UpdateMemberRequest struct {
	NewPlan    string `json:"new_plan" binding:"required"`
	NewEndDate string `json:"new_end_date" binding:"omitempty,isodate"`
}

// EndDate returns the parsed end date or nil when absent.
func (r UpdateMemberRequest) EndDate() (*model.Date, error) {
	return optionalDate(r.NewEndDate)
}

func optionalDate(s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
