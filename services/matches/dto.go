package matches

import (
	"encoding/json"

	"github.com/sgruwertal/dienst-service/repos/postgres"
)

// CreateMatchRequest creates a fixture. Date is the display form shown on
// the plan ("Sa, 06.12."); MatchDate the true calendar date in YYYY-MM-DD.
// Either may be given, the other is derived when possible.
type CreateMatchRequest struct {
	Opponent  string  `json:"opponent"`
	Date      string  `json:"date"`
	MatchDate string  `json:"match_date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Team      *string `json:"team"`
}

// UpdateMatchRequest is a partial admin edit. Omitted fields stay
// untouched; an explicit null team clears it.
type UpdateMatchRequest struct {
	Opponent  *string `json:"opponent"`
	Date      *string `json:"date"`
	MatchDate *string `json:"match_date"`
	Time      *string `json:"time"`
	Location  *string `json:"location"`
	Team      *string `json:"team"`

	TeamProvided bool `json:"-"`
}

// UnmarshalJSON distinguishes an omitted team from an explicit null, which
// clears the stored team.
func (r *UpdateMatchRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateMatchRequest
	var parsed alias
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateMatchRequest(parsed)
	_, r.TeamProvided = keys["team"]
	return nil
}

// MatchWithSlots is the public plan view: the fixture plus its slots with
// claimant contacts stripped.
type MatchWithSlots struct {
	postgres.Match
	Slots []postgres.SlotPublic `json:"slots"`
}
