package domain

import "github.com/shopspring/decimal"

// SubmissionPolicy limits applied to new enquiries
type SubmissionPolicy struct {
	MaxImages         int
	MaxImageBytes     int64
	MinTotalCubicFeet decimal.Decimal
	MaxAdvanceDays    int // 0 = unlimited
}

// DefaultSubmissionPolicy 5 images of up to 5 MiB, at least 0.1 cubic feet
func DefaultSubmissionPolicy() SubmissionPolicy {
	return SubmissionPolicy{
		MaxImages:         DefaultMaxImages,
		MaxImageBytes:     DefaultMaxImageBytes,
		MinTotalCubicFeet: MinTotalCubicFeet,
	}
}
