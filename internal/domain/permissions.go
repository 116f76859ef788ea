package domain

type Action string

const (
	ActionClaimSelf       Action = "CLAIM_SELF"
	ActionAssignAny       Action = "ASSIGN_ANY"
	ActionTransferAny     Action = "TRANSFER_ANY"
	ActionTransferOwn     Action = "TRANSFER_OWN"
	ActionUnassignAny     Action = "UNASSIGN_ANY"
	ActionUnassignOwn     Action = "UNASSIGN_OWN"
	ActionConclude        Action = "CONCLUDE"
	ActionConcludeManual  Action = "CONCLUDE_MANUAL"
	ActionManageReviewers Action = "MANAGE_REVIEWERS"
)

// permissionMatrix is the single authorization source for lifecycle
// transitions. Conclude additionally requires the actor to be the
// current assignee regardless of role.
var permissionMatrix = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionClaimSelf:       true,
		ActionAssignAny:       true,
		ActionTransferAny:     true,
		ActionTransferOwn:     true,
		ActionUnassignAny:     true,
		ActionUnassignOwn:     true,
		ActionConclude:        true,
		ActionConcludeManual:  true,
		ActionManageReviewers: true,
	},
	RoleSupervisor: {
		ActionClaimSelf:       true,
		ActionAssignAny:       true,
		ActionTransferAny:     true,
		ActionTransferOwn:     true,
		ActionUnassignAny:     true,
		ActionUnassignOwn:     true,
		ActionConclude:        true,
		ActionConcludeManual:  true,
		ActionManageReviewers: true,
	},
	RoleAgent: {
		ActionClaimSelf:   true,
		ActionTransferOwn: true,
		ActionUnassignOwn: true,
		ActionConclude:    true,
	},
	RoleObserver: {},
}

func (r Role) Allowed(action Action) bool {
	actions, ok := permissionMatrix[r]
	if !ok {
		return false
	}
	return actions[action]
}
