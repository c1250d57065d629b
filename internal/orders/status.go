package orders

type Status string

const (
	// StatusPendingConfirmation marks a reviewed order that is not durable
	// yet; it never appears in the sequence below.
	StatusPendingConfirmation Status = "pending_confirmation"

	StatusReceived       Status = "received"
	StatusConfirmed      Status = "confirmed"
	StatusBeingPrepared  Status = "being_prepared"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// sequence is the full lifecycle in order; StatusDelivered is terminal.
var sequence = []Status{
	StatusReceived,
	StatusConfirmed,
	StatusBeingPrepared,
	StatusOutForDelivery,
	StatusDelivered,
}

// next returns the successor status. ok is false for the terminal status and
// for anything outside the sequence.
func next(s Status) (Status, bool) {
	for i, cur := range sequence {
		if cur == s && i < len(sequence)-1 {
			return sequence[i+1], true
		}
	}
	return "", false
}
