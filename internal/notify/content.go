package notify

// confirmationContent holds the locale-dependent strings of the customer
// confirmation email. French is the default; English is selected only on an
// exact "en" locale.
type confirmationContent struct {
	Subject          string
	Greeting         string
	Thanks           string
	PlanLabel        string
	TotalLabel       string
	DeliveryLabel    string
	DeliveryStandard string
	DeliveryUrgent   string
	NextSteps        string
	Footer           string
}

var confirmationByLocale = map[string]confirmationContent{
	"fr": {
		Subject:          "🎵 Confirmation de votre commande Mélodia",
		Greeting:         "Merci pour votre commande!",
		Thanks:           "Nous avons bien reçu votre paiement et votre chanson personnalisée est en cours de création.",
		PlanLabel:        "Formule",
		TotalLabel:       "Total payé",
		DeliveryLabel:    "Délai de livraison",
		DeliveryStandard: "48 heures",
		DeliveryUrgent:   "⚡ 6 heures",
		NextSteps:        "Vous recevrez votre chanson par courriel dès qu'elle sera prête.",
		Footer:           "Mélodia - Chaque histoire a sa chanson 🎵",
	},
	"en": {
		Subject:          "🎵 Your Mélodia order confirmation",
		Greeting:         "Thank you for your order!",
		Thanks:           "We have received your payment and your custom song is now in production.",
		PlanLabel:        "Plan",
		TotalLabel:       "Total paid",
		DeliveryLabel:    "Delivery time",
		DeliveryStandard: "48 hours",
		DeliveryUrgent:   "⚡ 6 hours",
		NextSteps:        "You will receive your song by email as soon as it is ready.",
		Footer:           "Mélodia - Every story has its song 🎵",
	},
}

func confirmationFor(locale string) confirmationContent {
	if c, ok := confirmationByLocale[locale]; ok {
		return c
	}
	return confirmationByLocale["fr"]
}
