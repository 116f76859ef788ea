package domain

type TransferRepository interface {
	Append(record *TransferRecord) error
	History(withdrawalID uint64) ([]*TransferRecord, error)
}
