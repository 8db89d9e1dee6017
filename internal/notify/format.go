package notify

import (
	"fmt"
	"strings"

	"dentalsite/internal/forms"
)

var kindTitles = map[forms.Kind]string{
	forms.KindContact:  "📩 New contact request",
	forms.KindCallback: "📞 Callback requested",
	forms.KindEstimate: "🦷 New price estimate",
}

// FormatLeadNotification renders the admin message for a lead.
func FormatLeadNotification(lead forms.Lead) string {
	title, ok := kindTitles[lead.Kind]
	if !ok {
		title = "📋 New lead"
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Phone: %s\n", lead.Phone)
	if lead.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	}

	if lead.Kind == forms.KindEstimate {
		fmt.Fprintf(&b, "Service: %s (%s)\n", lead.Service, lead.ServiceSlug)
		fmt.Fprintf(&b, "Quantity: %d\n", lead.Quantity)
		if lead.MaterialType != "" {
			fmt.Fprintf(&b, "Material: %s\n", lead.MaterialType)
		}
		fmt.Fprintf(&b, "Estimate: %d – %d\n", lead.PriceMin, lead.PriceMax)
	}

	if lead.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", lead.Message)
	}

	if lead.Locale != "" {
		fmt.Fprintf(&b, "\nLocale: %s", lead.Locale)
	}
	fmt.Fprintf(&b, "\nReceived: %s", lead.CreatedAt.Format("2006-01-02 15:04 MST"))
	return b.String()
}
