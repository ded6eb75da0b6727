package orders

import (
	"strconv"

	"github.com/stripe/stripe-go/v81"
)

// maxStoryLen caps free-text story fields before they are attached as session
// metadata; Stripe limits metadata values to 500 characters.
const maxStoryLen = 500

// SongData is the client-supplied brief for the song to produce.
type SongData struct {
	RecipientName string `json:"recipientName"`
	Occasion      string `json:"occasion"`
	Genre         string `json:"genre"`
	Mood          string `json:"mood"`
	Vocal         string `json:"vocal"`
	Language      string `json:"language"`
	MeetStory     string `json:"meetStory"`
	BestMemory    string `json:"bestMemory"`
	WhatILove     string `json:"whatILove"`
	SpecialWord   string `json:"specialWord"`
}

// Metadata flattens an order into Stripe session metadata. Stripe holds this
// record for the lifetime of the session and is the only datastore for it.
func Metadata(plan string, song SongData, locale string, urgent, video bool) map[string]string {
	return map[string]string{
		"plan":           plan,
		"recipientName":  song.RecipientName,
		"occasion":       song.Occasion,
		"genre":          song.Genre,
		"mood":           song.Mood,
		"vocal":          song.Vocal,
		"songLanguage":   song.Language,
		"meetStory":      truncate(song.MeetStory, maxStoryLen),
		"bestMemory":     truncate(song.BestMemory, maxStoryLen),
		"whatILove":      truncate(song.WhatILove, maxStoryLen),
		"specialWord":    song.SpecialWord,
		"locale":         locale,
		"urgentDelivery": strconv.FormatBool(urgent),
		"videoOption":    strconv.FormatBool(video),
	}
}

// Order is the typed view of a session's metadata, read back unchanged at
// status-check time.
type Order struct {
	Plan   string
	Song   SongData
	Locale string
	Urgent bool
	Video  bool
}

// OrderFromSession reads the order back out of a checkout session's metadata.
func OrderFromSession(sess *stripe.CheckoutSession) Order {
	md := sess.Metadata
	return Order{
		Plan: md["plan"],
		Song: SongData{
			RecipientName: md["recipientName"],
			Occasion:      md["occasion"],
			Genre:         md["genre"],
			Mood:          md["mood"],
			Vocal:         md["vocal"],
			Language:      md["songLanguage"],
			MeetStory:     md["meetStory"],
			BestMemory:    md["bestMemory"],
			WhatILove:     md["whatILove"],
			SpecialWord:   md["specialWord"],
		},
		Locale: md["locale"],
		Urgent: md["urgentDelivery"] == "true",
		Video:  md["videoOption"] == "true",
	}
}

// CustomerEmail resolves the customer email from a session, preferring the
// address confirmed on the hosted checkout page over the one supplied at
// session creation. Empty when neither is present.
func CustomerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}

// NormalizeLocale selects "en" only on exact match, defaulting to "fr".
func NormalizeLocale(language string) string {
	if language == "en" {
		return "en"
	}
	return "fr"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
