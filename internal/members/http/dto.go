package http

import (
	"time"

	"github.com/nugammasigma/chapter/internal/members/domain"
	"github.com/nugammasigma/chapter/internal/members/service"
	"github.com/nugammasigma/chapter/pkg/membersdk"
)

func toInvitationResponse(inv domain.Invitation) membersdk.InvitationResponse {
	out := membersdk.InvitationResponse{
		ID:           inv.ID,
		Code:         inv.Code,
		Email:        inv.Email,
		FirstName:    inv.FirstName,
		LastName:     inv.LastName,
		MemberNumber: inv.MemberNumber,
		Used:         inv.Used,
		CreatedAt:    inv.CreatedAt.Unix(),
	}
	if inv.ExpiresAt != nil {
		out.ExpiresAt = inv.ExpiresAt.Unix()
	}
	return out
}

func toMemberResponse(st service.MemberStanding) membersdk.MemberResponse {
	m := st.Member
	return membersdk.MemberResponse{
		ID:               m.ID,
		MemberNumber:     m.MemberNumber,
		Status:           string(m.Status),
		DuesCurrent:      m.DuesCurrent,
		Phone:            m.Phone,
		LineName:         m.LineName,
		LineNumber:       m.LineNumber,
		DaysUntilRemoval: st.DaysUntilRemoval,
		RemovalEligible:  st.RemovalEligible,
		RemovalReason:    m.RemovalReason,
	}
}

func toPaymentResponse(p domain.Payment) membersdk.PaymentResponse {
	out := membersdk.PaymentResponse{
		ID:          p.ID,
		MemberID:    p.MemberID,
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Type:        string(p.Type),
		Status:      string(p.Status),
	}
	if p.PaidAt != nil {
		out.PaidAt = p.PaidAt.Unix()
	}
	return out
}

func toSweepResponse(res service.SweepResult) membersdk.SweepResponse {
	out := membersdk.SweepResponse{
		Examined: res.Examined,
		DryRun:   res.DryRun,
		Removed:  make([]membersdk.MemberResponse, 0, len(res.Removed)),
	}
	now := time.Now()
	for _, m := range res.Removed {
		out.Removed = append(out.Removed, toMemberResponse(service.Standing(m, now)))
	}
	return out
}
