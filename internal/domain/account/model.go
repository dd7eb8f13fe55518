package account

// Account represents a tenant of the meeting layer and the unit of ownership
// scoping. Every other record carries the identifier of the account that owns
// it, and all reads and writes are filtered by that field.
//
// OwnerID is zero while an anonymously created account awaits its
// self-ownership update; it is persisted as NULL in that window. Creation
// logic only ever produces self-ownership (OwnerID == ID) or single-level
// ownership under an authenticated account.
type Account struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	OwnerID int64  `json:"owner_id,omitempty"`
}

// Root reports whether the account owns itself. Only root accounts may
// authenticate directly.
func (a Account) Root() bool {
	return a.ID != 0 && a.OwnerID == a.ID
}
