package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

func TestMetadata_TruncatesStoryFields(t *testing.T) {
	long := strings.Repeat("a", 600)
	song := SongData{MeetStory: long, BestMemory: long, WhatILove: long, SpecialWord: long}

	md := Metadata("standard", song, "fr", false, false)

	assert.Len(t, []rune(md["meetStory"]), 500)
	assert.Len(t, []rune(md["bestMemory"]), 500)
	assert.Len(t, []rune(md["whatILove"]), 500)
	// specialWord is a short field, not a story field
	assert.Len(t, []rune(md["specialWord"]), 600)
}

func TestMetadata_TruncationCountsRunes(t *testing.T) {
	long := strings.Repeat("é", 600)
	md := Metadata("standard", SongData{MeetStory: long}, "fr", false, false)
	assert.Equal(t, strings.Repeat("é", 500), md["meetStory"])
}

func TestMetadata_ShortFieldsUntouched(t *testing.T) {
	md := Metadata("couple", SongData{MeetStory: "au café"}, "en", true, false)
	assert.Equal(t, "au café", md["meetStory"])
	assert.Equal(t, "couple", md["plan"])
	assert.Equal(t, "en", md["locale"])
}

func TestMetadata_BooleansAsLiteralStrings(t *testing.T) {
	md := Metadata("standard", SongData{}, "fr", true, false)
	assert.Equal(t, "true", md["urgentDelivery"])
	assert.Equal(t, "false", md["videoOption"])
}

func TestOrderFromSession_RoundTrip(t *testing.T) {
	song := SongData{
		RecipientName: "Marie",
		Occasion:      "anniversaire",
		Genre:         "pop",
		Mood:          "joyeuse",
		Vocal:         "femme",
		Language:      "french",
		MeetStory:     "au café du coin",
		BestMemory:    "le voyage à Gaspé",
		WhatILove:     "son rire",
		SpecialWord:   "mon trésor",
	}
	sess := &stripe.CheckoutSession{
		Metadata: Metadata("deluxe", song, "fr", true, true),
	}

	o := OrderFromSession(sess)

	require.Equal(t, "deluxe", o.Plan)
	assert.Equal(t, song, o.Song)
	assert.Equal(t, "fr", o.Locale)
	assert.True(t, o.Urgent)
	assert.True(t, o.Video)
}

func TestCustomerEmail(t *testing.T) {
	confirmed := &stripe.CheckoutSession{
		CustomerEmail:   "created@example.com",
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "confirmed@example.com"},
	}
	assert.Equal(t, "confirmed@example.com", CustomerEmail(confirmed))

	createdOnly := &stripe.CheckoutSession{CustomerEmail: "created@example.com"}
	assert.Equal(t, "created@example.com", CustomerEmail(createdOnly))

	assert.Equal(t, "", CustomerEmail(&stripe.CheckoutSession{}))
}

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, "en", NormalizeLocale("en"))
	assert.Equal(t, "fr", NormalizeLocale("fr"))
	assert.Equal(t, "fr", NormalizeLocale("EN"))
	assert.Equal(t, "fr", NormalizeLocale("en-US"))
	assert.Equal(t, "fr", NormalizeLocale(""))
}
