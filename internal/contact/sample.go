package contact

import "context"

// sampleContacts are the built-in demo rows used when no real source is
// configured or a sheet fetch comes back empty.
var sampleContacts = []Contact{
	{
		Name:       "John Smith",
		Email:      "john.smith@example.com",
		Context:    "Follow up on the marketing proposal we discussed last week. Mention the budget increase of 15%.",
		Importance: "Regular",
	},
	{
		Name:       "Sarah Johnson",
		Email:      "sarah.j@example.com",
		Context:    "Invitation to speak at our annual tech conference in September. Offer to cover travel expenses.",
		Importance: "VIP",
	},
	{
		Name:       "Michael Chen",
		Email:      "m.chen@example.com",
		Context:    "Thank them for their recent product purchase and ask for feedback on their experience.",
		Importance: "Regular",
	},
}

// SampleSource yields the built-in demo contacts.
type SampleSource struct{}

// Contacts returns a copy of the sample data.
func (SampleSource) Contacts(ctx context.Context) ([]Contact, error) {
	out := make([]Contact, len(sampleContacts))
	copy(out, sampleContacts)
	return out, nil
}
