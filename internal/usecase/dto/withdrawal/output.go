package dto

type WithdrawalOutput struct {
	WithdrawalID uint64
	ExternalRef  string
	Status       string
	AssignedTo   *string
}
