package postgres

// Slot is a single assignable duty instance belonging to a match. A slot is
// open iff user_name and user_contact are both absent; it is claimed iff
// both are present. cancellation_requested is only meaningful on a claimed
// slot.
type Slot struct {
	ID                    int64   `json:"id"`
	MatchID               int64   `json:"match_id"`
	Category              string  `json:"category"`
	Time                  string  `json:"time"`
	UserName              *string `json:"user_name"`
	UserContact           *string `json:"user_contact"`
	CancellationRequested bool    `json:"cancellation_requested"`
	HelperID              *string `json:"helper_id"`
	DurationMinutes       *int    `json:"duration_minutes"`
}

// IsOpen reports whether the slot can still be claimed.
func (s *Slot) IsOpen() bool {
	return s.UserName == nil && s.UserContact == nil
}

// IsClaimed reports whether a claimant identity is attached.
func (s *Slot) IsClaimed() bool {
	return s.UserName != nil && s.UserContact != nil
}

// SlotPublic is the slot view exposed to visitors. The claimant contact is
// never part of it.
type SlotPublic struct {
	ID                    int64   `json:"id"`
	MatchID               int64   `json:"match_id"`
	Category              string  `json:"category"`
	Time                  string  `json:"time"`
	UserName              *string `json:"user_name"`
	CancellationRequested bool    `json:"cancellation_requested"`
	HelperID              *string `json:"helper_id"`
	DurationMinutes       *int    `json:"duration_minutes"`
}

// Public strips the claimant contact from a slot.
func (s *Slot) Public() SlotPublic {
	return SlotPublic{
		ID:                    s.ID,
		MatchID:               s.MatchID,
		Category:              s.Category,
		Time:                  s.Time,
		UserName:              s.UserName,
		CancellationRequested: s.CancellationRequested,
		HelperID:              s.HelperID,
		DurationMinutes:       s.DurationMinutes,
	}
}

// Match is a scheduled fixture owning a set of slots. Date carries the
// display form ("Sa, 06.12."); MatchDate the true calendar date in
// YYYY-MM-DD, empty on rows created before the column existed.
type Match struct {
	ID        int64   `json:"id"`
	Opponent  string  `json:"opponent"`
	Date      string  `json:"date"`
	MatchDate string  `json:"match_date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Team      *string `json:"team"`
}

// ServiceType is a duty category in the catalog, e.g. "Theke".
type ServiceType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DefaultCount int    `json:"default_count"`
}

// ServiceTypeMember is a known helper name on the fixed roster of a
// category, used to pre-populate claim forms.
type ServiceTypeMember struct {
	ID            int64  `json:"id"`
	ServiceTypeID int64  `json:"service_type_id"`
	Name          string `json:"name"`
	SortOrder     *int   `json:"order"`
}

// Contribution is one claimed slot attributed to a helper identity, the
// raw material for leaderboard aggregation.
type Contribution struct {
	HelperID        string
	DurationMinutes int
	MatchDate       string
	DisplayDate     string
}

// SlotUpdate describes a partial admin edit of a slot. Nil fields are left
// untouched; ClearDuration resets the duration to unknown.
type SlotUpdate struct {
	MatchID         *int64
	Category        *string
	Time            *string
	DurationMinutes *int
	ClearDuration   bool
}

// MatchUpdate describes a partial admin edit of a match.
type MatchUpdate struct {
	Opponent  *string
	Date      *string
	MatchDate *string
	Time      *string
	Location  *string
	Team      *string
	ClearTeam bool
}
