package model

// Plan names a membership subscription plan. Values other than the
// constants below are accepted as free text.
type Plan string

const (
	PlanMonthly   Plan = "Monthly"
	PlanQuarterly Plan = "Quarterly"
	PlanYearly    Plan = "Yearly"
)

// Member represents a gym subscriber with a plan and date range.
type Member struct {
	ID        MemberID `json:"id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Plan      Plan     `json:"plan"`
	StartDate Date     `json:"start_date"`
	EndDate   *Date    `json:"end_date"`
}

// NewMember carries the attributes of a member to be created.
type NewMember struct {
	Name      string
	Phone     string
	Plan      Plan
	StartDate *Date
	EndDate   *Date
}

// MemberSortField lists the member columns lists may be ordered by.
type MemberSortField string

const (
	MemberSortStartDate MemberSortField = "start_date"
	MemberSortEndDate   MemberSortField = "end_date"
	MemberSortName      MemberSortField = "name"
	MemberSortPlan      MemberSortField = "plan"
)

func (f MemberSortField) Valid() bool {
	switch f {
	case MemberSortStartDate, MemberSortEndDate, MemberSortName, MemberSortPlan:
		return true
	}
	return false
}

// MemberOrder describes list ordering.
type MemberOrder struct {
	Field      MemberSortField
	Descending bool
}

// DefaultMemberOrder sorts newest start date first.
func DefaultMemberOrder() MemberOrder {
	return MemberOrder{Field: MemberSortStartDate, Descending: true}
}
