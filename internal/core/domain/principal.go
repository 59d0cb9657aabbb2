package domain

// Principal is the authenticated subject of a request: either an Identity or
// the configured admin.
type Principal interface {
	SubjectID() string
	Role() Role
	isPrincipal()
}

// IdentityPrincipal is a principal backed by a persisted identity.
type IdentityPrincipal struct {
	Identity *Identity
}

func (p IdentityPrincipal) SubjectID() string { return p.Identity.ID }
func (p IdentityPrincipal) Role() Role        { return p.Identity.Role }
func (IdentityPrincipal) isPrincipal()        {}

// AdminPrincipal is the static admin credential. It has no identity row.
type AdminPrincipal struct {
	Email string
}

func (p AdminPrincipal) SubjectID() string { return p.Email }
func (AdminPrincipal) Role() Role          { return RoleAdmin }
func (AdminPrincipal) isPrincipal()        {}

// AsIdentity returns the identity behind p, or ErrForbidden for the admin.
func AsIdentity(p Principal) (*Identity, error) {
	if ip, ok := p.(IdentityPrincipal); ok && ip.Identity != nil {
		return ip.Identity, nil
	}
	return nil, ErrForbidden
}

// CanManageFirm reports whether p may act as manager of firmID: the admin, or
// the law firm account whose id is firmID.
func CanManageFirm(p Principal, firmID string) bool {
	switch v := p.(type) {
	case AdminPrincipal:
		return true
	case IdentityPrincipal:
		return firmID != "" && v.Identity.Role == RoleLawFirm && v.Identity.ID == firmID
	}
	return false
}
