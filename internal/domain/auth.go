package domain

// SubjectType differentiates the two principal kinds.
type SubjectType string

const (
	SubjectTypeUser  SubjectType = "USER"
	SubjectTypeAdmin SubjectType = "ADMIN"
)

// Valid reports whether t names a known principal kind.
func (t SubjectType) Valid() bool {
	return t == SubjectTypeUser || t == SubjectTypeAdmin
}

// Principal is an authenticated identity. Exactly one of User or Admin is set.
type Principal struct {
	Kind  SubjectType
	User  *User
	Admin *Admin
}

// ID returns the record ID of whichever identity is set.
func (p *Principal) ID() string {
	switch {
	case p == nil:
		return ""
	case p.User != nil:
		return p.User.ID
	case p.Admin != nil:
		return p.Admin.ID
	}
	return ""
}

// Name returns the display name of whichever identity is set.
func (p *Principal) Name() string {
	switch {
	case p == nil:
		return ""
	case p.User != nil:
		return p.User.Name
	case p.Admin != nil:
		return p.Admin.Name
	}
	return ""
}

// PasswordHash returns the stored hash of whichever identity is set.
func (p *Principal) PasswordHash() string {
	switch {
	case p == nil:
		return ""
	case p.User != nil:
		return p.User.PasswordHash
	case p.Admin != nil:
		return p.Admin.PasswordHash
	}
	return ""
}

// IsAdmin reports whether the principal is an admin.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Kind == SubjectTypeAdmin && p.Admin != nil
}
