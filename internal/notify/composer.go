// Package notify turns confirmed-order metadata into outbound emails: an
// internal order notification with a CSV attachment, and a bilingual customer
// confirmation.
package notify

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"
	"time"

	"song-order-service/internal/catalog"
	"song-order-service/internal/orders"
)

// Message is one outbound email, ready for a Sender.
type Message struct {
	To         string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Attachment is an inline file attached to a Message.
type Attachment struct {
	Filename string
	Content  string
}

// Composer renders order notifications. Both render operations are pure
// functions of the order metadata.
type Composer struct {
	// Inbox is the fixed internal address receiving order notifications.
	Inbox string
	// Taxed mirrors the checkout tax mode so totals match what was charged.
	Taxed bool
}

type chargeLineView struct {
	Name   string
	Amount string
}

type internalNoticeData struct {
	Urgent         bool
	Video          bool
	Lines          []chargeLineView
	Total          string
	DeliveryWindow string
	CustomerEmail  string
	Date           string
	Song           orders.SongData
	SongLanguage   string
}

// InternalNotice renders the fixed-language order summary sent to the internal
// inbox, with a one-row CSV attachment for spreadsheet import.
func (cp Composer) InternalNotice(o orders.Order, customerEmail string, now time.Time) Message {
	product := catalog.Lookup(o.Plan)
	lines := catalog.ChargeLines(product, o.Urgent, o.Video, cp.Taxed)
	total := catalog.Total(lines)

	data := internalNoticeData{
		Urgent:         o.Urgent,
		Video:          o.Video,
		Total:          formatCAD(total),
		DeliveryWindow: deliveryWindow(o.Urgent),
		CustomerEmail:  orDefault(customerEmail, "Non fourni"),
		Date:           now.Format("2006-01-02 15:04"),
		Song:           o.Song,
		SongLanguage:   songLanguageLabel(o.Song.Language),
	}
	for _, l := range lines {
		data.Lines = append(data.Lines, chargeLineView{Name: l.Name, Amount: formatCAD(l.Amount)})
	}

	var buf bytes.Buffer
	if err := internalNoticeTmpl.Execute(&buf, data); err != nil {
		// Templates are compile-time constants; execution only fails on a
		// programming error.
		panic(err)
	}

	subject := fmt.Sprintf("🎵 Nouvelle commande Mélodia - %s - %s",
		orDefault(o.Song.RecipientName, "Client"), formatCAD(total))
	if o.Urgent {
		subject = "⚡ URGENT - " + subject
	}

	return Message{
		To:      cp.Inbox,
		Subject: subject,
		HTML:    buf.String(),
		Attachment: &Attachment{
			Filename: fmt.Sprintf("commande-%d.csv", now.Unix()),
			Content:  orderCSV(o, customerEmail, total, now),
		},
	}
}

type confirmationData struct {
	Content  confirmationContent
	PlanName string
	Total    string
	Delivery string
}

// CustomerConfirmation renders the bilingual payment receipt for the customer.
func (cp Composer) CustomerConfirmation(o orders.Order, customerEmail string) Message {
	product := catalog.Lookup(o.Plan)
	lines := catalog.ChargeLines(product, o.Urgent, o.Video, cp.Taxed)
	content := confirmationFor(o.Locale)

	delivery := content.DeliveryStandard
	if o.Urgent {
		delivery = content.DeliveryUrgent
	}

	data := confirmationData{
		Content:  content,
		PlanName: product.Name,
		Total:    formatCAD(catalog.Total(lines)),
		Delivery: delivery,
	}

	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		panic(err)
	}

	return Message{
		To:      customerEmail,
		Subject: content.Subject,
		HTML:    buf.String(),
	}
}

// orderCSV builds the one-row spreadsheet attachment. encoding/csv doubles
// embedded quotes and quotes any field that needs it.
func orderCSV(o orders.Order, customerEmail string, total int64, now time.Time) string {
	product := catalog.Lookup(o.Plan)
	urgent, window := "Non", "48h"
	if o.Urgent {
		urgent, window = "OUI", "6h"
	}
	video := "Non"
	if o.Video {
		video = "OUI"
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{
		"Date", "Email client", "Formule", "Prix", "Urgent", "Vidéo", "Délai",
		"Destinataire", "Langue", "Occasion", "Genre", "Ambiance", "Voix",
		"Rencontre", "Souvenir", "Ce qu'il/elle aime", "Mot spécial",
	})
	_ = w.Write([]string{
		now.Format("2006-01-02 15:04"),
		customerEmail,
		product.Name,
		formatCAD(total),
		urgent,
		video,
		window,
		o.Song.RecipientName,
		o.Song.Language,
		o.Song.Occasion,
		o.Song.Genre,
		o.Song.Mood,
		o.Song.Vocal,
		o.Song.MeetStory,
		o.Song.BestMemory,
		o.Song.WhatILove,
		o.Song.SpecialWord,
	})
	w.Flush()
	return b.String()
}

func formatCAD(cents int64) string {
	return fmt.Sprintf("%.2f $ CAD", float64(cents)/100)
}

func deliveryWindow(urgent bool) string {
	if urgent {
		return "⚡ URGENT - 6 HEURES"
	}
	return "48 heures"
}

func songLanguageLabel(language string) string {
	if language == "french" {
		return "Français"
	}
	return "Anglais"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var internalNoticeTmpl = template.Must(template.New("internal").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #EF5B6C, #D94A5A); padding: 30px; border-radius: 15px 15px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0;">🎵 Nouvelle Commande Mélodia!{{if .Urgent}} <span style="background:#2A2A2A;color:white;padding:5px 10px;border-radius:20px;font-size:12px;">⚡ URGENT</span>{{end}}</h1>
  </div>

  <div style="background: #f9f9f9; padding: 30px; border: 1px solid #eee;">
    <h2 style="color: #EF5B6C; border-bottom: 2px solid #EF5B6C; padding-bottom: 10px;">💰 Détails de la commande</h2>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Lines}}<tr><td style="padding: 8px 0; font-weight: bold;">{{.Name}}:</td><td>{{.Amount}}</td></tr>
      {{end}}<tr><td style="padding: 8px 0; font-weight: bold;">Total:</td><td style="color: #EF5B6C; font-weight: bold; font-size: 18px;">{{.Total}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Délai livraison:</td><td style="font-weight: bold;{{if .Urgent}} color: #EF5B6C;{{end}}">{{.DeliveryWindow}}</td></tr>
      {{if .Video}}<tr><td style="padding: 8px 0; font-weight: bold;">🎬 Vidéo avec paroles:</td><td>OUI</td></tr>
      {{end}}<tr><td style="padding: 8px 0; font-weight: bold;">Email client:</td><td>{{.CustomerEmail}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Date:</td><td>{{.Date}}</td></tr>
    </table>

    <h2 style="color: #EF5B6C; border-bottom: 2px solid #EF5B6C; padding-bottom: 10px; margin-top: 30px;">🎤 Informations pour la chanson</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; font-weight: bold;">Pour:</td><td>{{if .Song.RecipientName}}{{.Song.RecipientName}}{{else}}Non spécifié{{end}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Langue:</td><td>{{.SongLanguage}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Occasion:</td><td>{{if .Song.Occasion}}{{.Song.Occasion}}{{else}}Non spécifié{{end}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Genre musical:</td><td>{{if .Song.Genre}}{{.Song.Genre}}{{else}}Non spécifié{{end}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Ambiance:</td><td>{{if .Song.Mood}}{{.Song.Mood}}{{else}}Non spécifié{{end}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Voix:</td><td>{{if .Song.Vocal}}{{.Song.Vocal}}{{else}}Non spécifié{{end}}</td></tr>
    </table>

    <h2 style="color: #EF5B6C; border-bottom: 2px solid #EF5B6C; padding-bottom: 10px; margin-top: 30px;">💕 L'histoire</h2>

    <div style="background: white; padding: 15px; border-radius: 10px; margin-bottom: 15px;">
      <h4 style="margin: 0 0 10px 0; color: #333;">Où ils se sont rencontrés:</h4>
      <p style="margin: 0; color: #555;">{{if .Song.MeetStory}}{{.Song.MeetStory}}{{else}}Non spécifié{{end}}</p>
    </div>

    <div style="background: white; padding: 15px; border-radius: 10px; margin-bottom: 15px;">
      <h4 style="margin: 0 0 10px 0; color: #333;">Plus beau souvenir:</h4>
      <p style="margin: 0; color: #555;">{{if .Song.BestMemory}}{{.Song.BestMemory}}{{else}}Non spécifié{{end}}</p>
    </div>

    <div style="background: white; padding: 15px; border-radius: 10px; margin-bottom: 15px;">
      <h4 style="margin: 0 0 10px 0; color: #333;">Ce qu'il/elle aime:</h4>
      <p style="margin: 0; color: #555;">{{if .Song.WhatILove}}{{.Song.WhatILove}}{{else}}Non spécifié{{end}}</p>
    </div>

    <div style="background: white; padding: 15px; border-radius: 10px;">
      <h4 style="margin: 0 0 10px 0; color: #333;">Mot spécial à inclure:</h4>
      <p style="margin: 0; color: #555;">{{if .Song.SpecialWord}}{{.Song.SpecialWord}}{{else}}Aucun{{end}}</p>
    </div>
  </div>

  <div style="background: #2A2A2A; padding: 20px; border-radius: 0 0 15px 15px; text-align: center;">
    <p style="color: white; margin: 0;">Mélodia - Chaque histoire a sa chanson 🎵</p>
  </div>
</div>
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #EF5B6C, #D94A5A); padding: 30px; border-radius: 15px 15px 0 0; text-align: center;">
    <h1 style="color: white; margin: 0;">🎵 {{.Content.Greeting}}</h1>
  </div>

  <div style="background: #f9f9f9; padding: 30px; border: 1px solid #eee;">
    <p style="color: #333;">{{.Content.Thanks}}</p>
    <table style="width: 100%; border-collapse: collapse; margin-top: 20px;">
      <tr><td style="padding: 8px 0; font-weight: bold;">{{.Content.PlanLabel}}:</td><td>{{.PlanName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">{{.Content.TotalLabel}}:</td><td style="color: #EF5B6C; font-weight: bold;">{{.Total}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">{{.Content.DeliveryLabel}}:</td><td>{{.Delivery}}</td></tr>
    </table>
    <p style="color: #333; margin-top: 20px;">{{.Content.NextSteps}}</p>
  </div>

  <div style="background: #2A2A2A; padding: 20px; border-radius: 0 0 15px 15px; text-align: center;">
    <p style="color: white; margin: 0;">{{.Content.Footer}}</p>
  </div>
</div>
`))
