package domain

// Identity is the acting associate's scope for listing quotes.
// Either field may be nil; the upstream decides what an unscoped query returns.
type Identity struct {
	// CompanyID is the first company of the associate's partner profile.
	CompanyID *string

	// AssociateID is the associate's own identifier.
	AssociateID *string
}

// PartnerProfile is the secured user profile issued to partner associates.
type PartnerProfile struct {
	Companies []PartnerCompany
}

// PartnerCompany is one company an associate acts for.
type PartnerCompany struct {
	CompanyID   string
	CompanyName string
}

// PrimaryCompanyID returns the first company's identifier.
// Returns nil when the profile, its company list, or the identifier is missing.
func (p *PartnerProfile) PrimaryCompanyID() *string {
	if p == nil || len(p.Companies) == 0 {
		return nil
	}

	id := p.Companies[0].CompanyID
	if id == "" {
		return nil
	}

	return &id
}

// NewIdentity builds an Identity from an optional profile and a raw associate ID.
// A blank associate ID is treated as absent.
func NewIdentity(profile *PartnerProfile, associateID string) Identity {
	id := Identity{CompanyID: profile.PrimaryCompanyID()}
	if associateID != "" {
		id.AssociateID = &associateID
	}

	return id
}
