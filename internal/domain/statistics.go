package domain

type ReviewerStatistics struct {
	ReviewerID          string
	ApprovedCount       int64
	RejectedCount       int64
	ManualApprovedCount int64
	ManualRejectedCount int64
	ApproveAvgMinutes   float64
	RejectAvgMinutes    float64
}

type GlobalStatistics struct {
	ApprovedCount       int64
	RejectedCount       int64
	ManualApprovedCount int64
	ManualRejectedCount int64
	ApproveAvgMinutes   float64
	RejectAvgMinutes    float64
	PaidAmountTotal     float64
	RejectReasons       map[string]int64
}

// NextAverage computes the incremental running average after the newCount-th
// sample. Mirrors the Lua update executed by the redis stats store.
func NextAverage(oldAvg float64, newCount int64, sample float64) float64 {
	if newCount <= 0 {
		return 0
	}
	return ((oldAvg * float64(newCount-1)) + sample) / float64(newCount)
}

// ClampDuration floors negative durations to zero. Negative samples show up
// under clock skew between the submitting pipeline and this service.
func ClampDuration(minutes float64) float64 {
	if minutes < 0 {
		return 0
	}
	return minutes
}
