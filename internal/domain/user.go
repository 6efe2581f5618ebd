package domain

// User is the domain model for registered accounts.
//
// ID is 0 until the persistence layer assigns one. Password carries the
// plaintext on the way into a write path and the bcrypt hash everywhere
// else; an empty Password means "not supplied". ProfileID and StatusID are
// pointers so a partial update can tell "leave unchanged" apart from zero.
type User struct {
	ID           int64
	Email        string
	Password     string
	CreationDate string
	ProfileID    *int64
	StatusID     *int64
}

// Persisted reports whether the gateway has assigned an ID.
func (u *User) Persisted() bool {
	return u.ID != 0
}
