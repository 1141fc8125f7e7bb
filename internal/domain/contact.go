package domain

// Contact is a single phonebook entry. The ID is assigned by the store on
// creation and is immutable; it is serialized as "_id" to keep the wire
// format the API has always had.
type Contact struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// SortOrder selects the direction of the firstName sort on contact listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a query parameter value onto a SortOrder,
// defaulting to ascending.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}
