package service

// Outcome reports how a best-effort notify operation finished. The
// operations never return an error: a notification failure must not
// break whatever primary transaction triggered it. Callers that want
// visibility inspect the outcome instead.
type Outcome int

const (
	// OutcomeDelivered means the notice was persisted and, where the
	// event carries a mail counterpart, the mail attempt succeeded.
	OutcomeDelivered Outcome = iota
	// OutcomeRecipientNotFound means the recipient did not resolve and
	// the operation was skipped entirely.
	OutcomeRecipientNotFound
	// OutcomeStoreFailed means the notice could not be persisted.
	OutcomeStoreFailed
	// OutcomeEmailFailed means the notice was persisted but the mail
	// attempt failed. The persisted notice is kept as-is.
	OutcomeEmailFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRecipientNotFound:
		return "recipient_not_found"
	case OutcomeStoreFailed:
		return "store_failed"
	case OutcomeEmailFailed:
		return "email_failed"
	default:
		return "unknown"
	}
}
