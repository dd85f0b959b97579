package domain

import "time"

// CompanyType distinguishes shippers from carriers.
type CompanyType string

const (
	CompanyTypeLogistics CompanyType = "LOGISTICS"
	CompanyTypeTransport CompanyType = "TRANSPORT"
)

// Valid reports whether the type is a known enum value.
func (t CompanyType) Valid() bool {
	return t == CompanyTypeLogistics || t == CompanyTypeTransport
}

// Company is loosely integrated: users reference companies by name only.
type Company struct {
	ID        string
	Name      string
	Type      CompanyType
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
