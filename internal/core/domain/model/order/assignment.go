package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Assignment binds an order to a delivery agent. Name and phone are snapshotted from the agent
// record when the claim happens so the customer sees who is on the way.
type Assignment struct {
	agentID    kernel.UUID
	agentName  string
	agentPhone string
	assignedAt time.Time
}

func NewAssignment(agentID kernel.UUID, name, phone string, assignedAt time.Time) (Assignment, error) {
	if err := agentID.Validate(); err != nil {
		return Assignment{}, err
	}
	return Assignment{
		agentID:    agentID,
		agentName:  name,
		agentPhone: phone,
		assignedAt: assignedAt.UTC(),
	}, nil
}

func (a Assignment) AgentID() kernel.UUID { return a.agentID }
func (a Assignment) AgentName() string { return a.agentName }
func (a Assignment) AgentPhone() string { return a.agentPhone }
func (a Assignment) AssignedAt() time.Time { return a.assignedAt }
