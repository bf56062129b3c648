package models

// Principal is the authenticated caller, taken from a verified token.
type Principal struct {
	ID         int64
	Kind       string // "account" or "staff"
	Email      string
	FullName   string
	Role       string
	ProfilePic string
}

func (p *Principal) IsStaff() bool {
	return p != nil && p.Kind == "staff"
}

func (p *Principal) IsAccount() bool {
	return p != nil && p.Kind == "account"
}
