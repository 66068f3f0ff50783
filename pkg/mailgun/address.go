package mailgun

import "strings"

// Address is a single message participant.
type Address struct {
	// Name is the optional display name; empty means none.
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// NewAddress creates an Address. Pass an empty name for a bare address.
func NewAddress(name, address string) Address {
	return Address{Name: name, Address: address}
}

// String renders the address as "Name <address>" or just "address".
func (a Address) String() string {
	if a.Name != "" {
		return a.Name + " <" + a.Address + ">"
	}
	return a.Address
}

// AddressList is an ordered list of participants.
type AddressList []Address

// String joins the rendered addresses with commas, preserving order.
func (l AddressList) String() string {
	parts := make([]string, len(l))
	for i, a := range l {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func (l AddressList) clone() AddressList {
	if l == nil {
		return nil
	}
	return append(AddressList(nil), l...)
}
