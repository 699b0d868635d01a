package model

import "time"

// SnackRequest is a single user-submitted desire for an item, tracked
// through an ordering lifecycle.
//
// The item fields (Snack, Drink, Misc, Link) are free text and all
// optional — a request usually fills in one or two of them.
//
// OrderedAt is a pointer because the column is nullable: it is non-nil
// exactly while OrderedFlag is true. The two are always written together
// by the mark-ordered operation, so un-marking a request clears the
// timestamp again.
//
// KeepOnHand marks a standing/recurring item. It is independent of the
// ordered state: a request can be kept on hand whether or not it has been
// ordered.
type SnackRequest struct {
	ID          int64      `json:"id"           db:"id"`
	UserID      int64      `json:"user_id"      db:"user_id"`
	Snack       string     `json:"snack"        db:"snack"`
	Drink       string     `json:"drink"        db:"drink"`
	Misc        string     `json:"misc"         db:"misc"`
	Link        string     `json:"link"         db:"link"`
	OrderedFlag bool       `json:"ordered_flag" db:"ordered_flag"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
	OrderedAt   *time.Time `json:"ordered_at"   db:"ordered_at"`
	KeepOnHand  bool       `json:"keep_on_hand" db:"keep_on_hand"`

	// UserName is the requesting user's display name, populated only by
	// the all-requests listing (joined from users.name as user_name).
	UserName string `json:"user_name,omitempty" db:"user_name"`
}
