package domain

// RefKind tags which key a UserRef carries.
type RefKind int

const (
	RefNone RefKind = iota
	RefID
	RefEmail
)

// UserRef identifies a user for lookup by exactly one key. The zero value
// carries no criteria and resolves to nothing.
type UserRef struct {
	kind  RefKind
	id    int64
	email string
}

// ByID references a user by its persisted ID.
func ByID(id int64) UserRef {
	return UserRef{kind: RefID, id: id}
}

// ByEmail references a user by email address.
func ByEmail(email string) UserRef {
	return UserRef{kind: RefEmail, email: email}
}

// Kind returns the tag of the reference.
func (r UserRef) Kind() RefKind {
	return r.kind
}

// ID returns the id key; meaningful only when Kind is RefID.
func (r UserRef) ID() int64 {
	return r.id
}

// Email returns the email key; meaningful only when Kind is RefEmail.
func (r UserRef) Email() string {
	return r.email
}
