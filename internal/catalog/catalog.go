// Package catalog defines the fixed product tiers, add-on fees and tax rates
// for custom song orders. The catalog is immutable and defined at compile time.
package catalog

import "math"

// Product is one fixed tier of the song catalog. Prices are CAD cents.
type Product struct {
	ID          string
	Name        string
	Price       int64
	Description string
}

const (
	// Currency for every charge line.
	Currency = "cad"

	// UrgentFee is the flat 6-hour delivery surcharge, in cents.
	UrgentFee int64 = 1500

	// VideoFee is the flat lyric-video add-on, in cents.
	VideoFee int64 = 2500

	// GSTRate and QSTRate are applied to the pre-tax subtotal, each rounded
	// independently to the nearest cent.
	GSTRate = 0.05
	QSTRate = 0.09975
)

var products = map[string]Product{
	"standard": {
		ID:          "standard",
		Name:        "Chanson Personnalisée - Standard",
		Price:       2900,
		Description: "1 chanson personnalisée + MP3 + Paroles PDF",
	},
	"couple": {
		ID:          "couple",
		Name:        "Chanson Personnalisée - Pack Couple",
		Price:       4900,
		Description: "2 chansons différentes + MP3 + Paroles PDF",
	},
	"deluxe": {
		ID:          "deluxe",
		Name:        "Chanson Personnalisée - Pack Deluxe",
		Price:       5500,
		Description: "2 chansons + 2 versions chaque (4 MP3) + Paroles PDF",
	},
}

// Lookup returns the product for the given plan id, falling back to the
// standard tier for any unknown id. It never fails.
func Lookup(planID string) Product {
	if p, ok := products[planID]; ok {
		return p
	}
	return products["standard"]
}

// ChargeLine is one itemized component of a checkout session. The hosted
// payment page displays an itemized receipt, so components are never
// pre-summed.
type ChargeLine struct {
	Name        string
	Description string
	Amount      int64
}

// ChargeLines computes the itemized charge list for an order: the base
// product, each selected add-on, and each tax when taxed is set.
func ChargeLines(p Product, urgent, video, taxed bool) []ChargeLine {
	lines := []ChargeLine{
		{Name: p.Name, Description: p.Description, Amount: p.Price},
	}
	if urgent {
		lines = append(lines, ChargeLine{
			Name:        "Livraison urgente (6h)",
			Description: "Livraison express en 6 heures",
			Amount:      UrgentFee,
		})
	}
	if video {
		lines = append(lines, ChargeLine{
			Name:        "Vidéo avec paroles",
			Description: "Vidéo lyrique de votre chanson",
			Amount:      VideoFee,
		})
	}
	if taxed {
		subtotal := Total(lines)
		lines = append(lines,
			ChargeLine{Name: "TPS (5%)", Amount: roundTax(subtotal, GSTRate)},
			ChargeLine{Name: "TVQ (9.975%)", Amount: roundTax(subtotal, QSTRate)},
		)
	}
	return lines
}

// Total sums the amounts of the given charge lines.
func Total(lines []ChargeLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}

func roundTax(subtotal int64, rate float64) int64 {
	return int64(math.Round(float64(subtotal) * rate))
}
