package domain

// Transition names a single edge of the booking state machine.
type Transition string

const (
	TransitionUploadPaymentProof Transition = "upload_payment_proof"
	TransitionPaymentAccepted    Transition = "payment_accepted"
	TransitionPaymentDenied      Transition = "payment_denied"
	TransitionTenantConfirm      Transition = "tenant_confirm"
	TransitionTenantReject       Transition = "tenant_reject"
	TransitionGuestCancel        Transition = "guest_cancel"
	TransitionTenantCancel       Transition = "tenant_cancel"
	TransitionTenantComplete     Transition = "tenant_complete"
	TransitionAutoCancel         Transition = "auto_cancel"
	TransitionAutoComplete       Transition = "auto_complete"
)

type rule struct {
	from           []BookingStatus
	to             BookingStatus
	reasonRequired bool
}

func (r rule) allows(s BookingStatus) bool {
	for _, f := range r.from {
		if f == s {
			return true
		}
	}
	return false
}

var transitions = map[Transition]rule{
	TransitionUploadPaymentProof: {from: []BookingStatus{StatusPendingPayment}, to: StatusProcessing},
	TransitionPaymentAccepted:    {from: []BookingStatus{StatusPendingPayment, StatusProcessing}, to: StatusConfirmed},
	TransitionPaymentDenied:      {from: []BookingStatus{StatusPendingPayment, StatusProcessing}, to: StatusCancelled},
	TransitionTenantConfirm:      {from: []BookingStatus{StatusProcessing}, to: StatusConfirmed},
	TransitionTenantReject:       {from: []BookingStatus{StatusProcessing}, to: StatusRejected, reasonRequired: true},
	TransitionGuestCancel:        {from: []BookingStatus{StatusPendingPayment}, to: StatusCancelled, reasonRequired: true},
	TransitionTenantCancel:       {from: []BookingStatus{StatusConfirmed, StatusProcessing}, to: StatusCancelled, reasonRequired: true},
	TransitionTenantComplete:     {from: []BookingStatus{StatusConfirmed}, to: StatusCompleted},
	TransitionAutoCancel:         {from: []BookingStatus{StatusPendingPayment}, to: StatusCancelled},
	TransitionAutoComplete:       {from: []BookingStatus{StatusConfirmed}, to: StatusCompleted},
}

// Transitions lists every known transition.
func Transitions() []Transition {
	out := make([]Transition, 0, len(transitions))
	for t := range transitions {
		out = append(out, t)
	}
	return out
}

// CanApply reports whether t is allowed from status s.
func (t Transition) CanApply(s BookingStatus) bool {
	r, ok := transitions[t]
	return ok && r.allows(s)
}

// Target is the status a successful t lands in.
func (t Transition) Target() BookingStatus {
	return transitions[t].to
}

// Sources lists the statuses t may start from.
func (t Transition) Sources() []BookingStatus {
	return append([]BookingStatus(nil), transitions[t].from...)
}
