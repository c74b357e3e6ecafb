package providers

import (
	"gcalagenda/pkg/calendar"
	"gcalagenda/pkg/calendar/google"
	"gcalagenda/pkg/calendar/ical"
)

// InitializeBuiltinProviders registers all built-in calendar providers
// with the factory.
func InitializeBuiltinProviders(factory *calendar.DefaultProviderFactory) {
	// Google Calendar over the REST API with OAuth2 user credentials.
	factory.RegisterProvider("google", func() calendar.Provider {
		return google.NewProvider()
	})

	// Read-only public ICS feeds.
	factory.RegisterProvider("ical", func() calendar.Provider {
		return ical.NewProvider()
	})
}
