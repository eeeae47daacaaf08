package telegram

// UI texts. Wording kept stable so subscribers see consistent messages.
const (
	helpText = "You can control me by sending me these commands:\n\n" +
		"/food - I'll tell you the complete menu of the day.\n" +
		"/fooden - I'll tell you the complete menu of the day in English only.\n" +
		"/foodfi - I'll tell you the complete menu of the day in Finnish only.\n" +
		"/open - I'll tell you the opening hours of the staff restaurant.\n" +
		"/subscribe - I'll send you a message everyday with the complete menu of the day.\n" +
		"/unsubscribe - I'll stop sending you a message everyday."

	startText = "Hi! I'm HiomoBot! " + helpText

	openText = "Summer Opening Hours 3.7. - 4.8.\n" +
		"Restaurant Open: 8:00 - 14:30\n" +
		"Lunch Served: 11:00 - 13:30"

	subscribedText        = "You are now subscribed to HiomoBot! You will receive the menu every weekday at 10:30 AM."
	alreadySubscribedText = "You are already subscribed to HiomoBot."
	unsubscribedText      = "You are now unsubscribed from HiomoBot."
	notSubscribedText     = "You can't unsubscribe if you have no subscription."

	subscribeErrorText   = "Subscription failed. Please try again later."
	unsubscribeErrorText = "Unsubscribe failed. Please try again later."
)
