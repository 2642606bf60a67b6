package entity

// Caller is the authenticated identity a request acts as, resolved from the
// bearer credential by the auth middleware.
type Caller struct {
	UserID  int64
	IsAdmin bool
}

// CanAccess reports whether the caller may read or mutate a record owned by
// ownerID. Admins bypass the ownership check.
func (c Caller) CanAccess(ownerID int64) bool {
	return c.IsAdmin || c.UserID == ownerID
}
