package slots

import (
	"encoding/json"

	"github.com/sgruwertal/dienst-service/repos/postgres"
)

// ClaimRequest is the sign-up payload of a visitor.
type ClaimRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CancellationRequest asks for release of a claimed slot. The email must be
// the one used at claim time; it is how the original claimant proves the
// request is theirs.
type CancellationRequest struct {
	Email string `json:"email"`
}

// ClaimResult reports a successful transition. NotificationQueued is
// advisory only: the state change stands either way.
type ClaimResult struct {
	Slot               postgres.SlotPublic `json:"slot"`
	NotificationQueued bool                `json:"notification_queued"`
}

// CreateSlotsRequest creates one or more open slots on a match. When Count
// is zero a single slot is created. DurationMinutes overrides the duration
// derived from the time descriptor.
type CreateSlotsRequest struct {
	MatchID         int64    `json:"match_id"`
	Category        string   `json:"category"`
	Time            string   `json:"time"`
	DurationMinutes *float64 `json:"duration_minutes"`
	Count           int      `json:"count"`
}

// UpdateSlotRequest is a partial admin edit. Omitted fields stay untouched;
// an explicit null duration resets it to unknown.
type UpdateSlotRequest struct {
	MatchID          *int64   `json:"match_id"`
	Category         *string  `json:"category"`
	Time             *string  `json:"time"`
	DurationMinutes  *float64 `json:"duration_minutes"`
	DurationProvided bool     `json:"-"`
}

// UnmarshalJSON distinguishes an omitted duration_minutes from an explicit
// null, which clears the stored duration.
func (r *UpdateSlotRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateSlotRequest
	var parsed alias
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateSlotRequest(parsed)
	_, r.DurationProvided = keys["duration_minutes"]
	return nil
}
