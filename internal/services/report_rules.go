package services

import (
	"fmt"
	"math"

	"gearguard/pkg/constants"
)

const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"

	WorkloadOverloaded = "OVERLOADED"
	WorkloadBusy       = "BUSY"
	WorkloadAvailable  = "AVAILABLE"
)

// FormatRate - процент part/total с двумя знаками. При total == 0 возвращает empty.
func FormatRate(part, total int64, empty string) string {
	if total <= 0 {
		return empty
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// hours: NULL из SUM/AVG считается нулём.
func hours(v *float64) float64 {
	if v == nil {
		return 0
	}
	return round2(*v)
}

func RiskLevel(pending int64) string {
	switch {
	case pending > 3:
		return RiskHigh
	case pending > 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

func WorkloadStatus(inProgress int64) string {
	switch {
	case inProgress > 5:
		return WorkloadOverloaded
	case inProgress > 2:
		return WorkloadBusy
	default:
		return WorkloadAvailable
	}
}

func rateOrNA(part, total int64) string {
	return FormatRate(part, total, constants.NotAvailable)
}

func rateOrZero(part, total int64) string {
	return FormatRate(part, total, "0%")
}
