package domain

// CustomerStatus enumerates the lifecycle states a customer can be in.
// Only "REGISTERED" is assigned by the system; anything else is
// caller-controlled free text.
type CustomerStatus string

const (
	CustomerRegistered CustomerStatus = "REGISTERED"
)

// Customer represents a registered customer. The numeric ID is a surrogate
// key assigned by the database on insert; the email is the natural key used
// by every API operation.
type Customer struct {
	ID      int64          `json:"id" db:"id"`
	Name    string         `json:"name" db:"name"`
	EmailID string         `json:"emailId" db:"email_id"`
	Address string         `json:"address" db:"address"`
	Status  CustomerStatus `json:"status" db:"status"`
}

// CustomerMessage is the outbound event payload for customer created and
// deleted notifications. It is an ephemeral projection of a Customer and is
// never persisted.
type CustomerMessage struct {
	EmailID   string `json:"emailId"`
	FirstName string `json:"firstName"`
}

// MessageFromCustomer projects a customer into its notification payload.
func MessageFromCustomer(c *Customer) CustomerMessage {
	return CustomerMessage{EmailID: c.EmailID, FirstName: c.Name}
}

// Addresses is the fixed allow-list a customer address must belong to.
var Addresses = []string{"Gujarat", "Pune", "Mumbai"}

// ValidAddress reports whether the given address is in the allow-list.
func ValidAddress(address string) bool {
	for _, a := range Addresses {
		if a == address {
			return true
		}
	}
	return false
}
