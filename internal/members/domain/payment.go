package domain

import "time"

// PaymentType labels what a payment covers.
type PaymentType string

const (
	PaymentMonthlyDues  PaymentType = "monthly_dues"
	PaymentSemesterDues PaymentType = "semester_dues"
	PaymentAnnualDues   PaymentType = "annual_dues"
	PaymentAssessment   PaymentType = "assessment"
	PaymentOther        PaymentType = "other"
)

// ParsePaymentType validates a payment type from external input.
func ParsePaymentType(s string) (PaymentType, bool) {
	switch t := PaymentType(s); t {
	case PaymentMonthlyDues, PaymentSemesterDues, PaymentAnnualDues, PaymentAssessment, PaymentOther:
		return t, true
	}
	return "", false
}

// PaymentStatus tracks a payment through the processor.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment is a single dues or assessment payment record.
type Payment struct {
	ID            string
	MemberID      string
	AmountCents   int64
	Currency      string
	Type          PaymentType
	Status        PaymentStatus
	StripeSession string // checkout session ID, empty for manual entries
	Note          string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CountsTowardDues reports whether a settled payment restores dues standing.
func (p Payment) CountsTowardDues() bool {
	if p.Status != PaymentPaid {
		return false
	}
	switch p.Type {
	case PaymentMonthlyDues, PaymentSemesterDues, PaymentAnnualDues:
		return true
	}
	return false
}
