package dataset

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

const generatedDays = 365

type priceBand struct {
	min float64
	max float64
}

var categoryBands = map[string]priceBand{
	"Electronics":   {500, 5000},
	"Clothing":      {50, 500},
	"Home & Garden": {30, 800},
	"Sports":        {100, 1500},
	"Books":         {20, 150},
	"Toys":          {25, 400},
	"Food":          {10, 200},
	"Beauty":        {15, 300},
}

var categories = []string{
	"Electronics", "Clothing", "Home & Garden", "Sports",
	"Books", "Toys", "Food", "Beauty",
}

var regions = []string{"North", "Northeast", "Central", "Southeast", "South"}

var citiesByRegion = map[string][]string{
	"North":     {"Rivermouth", "Pinehaven", "Northgate"},
	"Northeast": {"Saltbay", "Harborview", "Eastport", "Dunefield"},
	"Central":   {"Midland", "Clearwater", "Prairie Falls"},
	"Southeast": {"Kingsport", "Bayside", "Ironhill", "Lakecrest"},
	"South":     {"Southbridge", "Valleyforge", "Stonegate"},
}

type weighted[T any] struct {
	value  T
	weight float64
}

var discountLevels = []weighted[float64]{
	{0.00, 0.30}, {0.05, 0.20}, {0.10, 0.15}, {0.15, 0.15},
	{0.20, 0.10}, {0.25, 0.05}, {0.30, 0.05},
}

var statusWeights = []weighted[models.Status]{
	{models.StatusCompleted, 0.85},
	{models.StatusPending, 0.10},
	{models.StatusCancelled, 0.05},
}

var paymentWeights = []weighted[string]{
	{"Credit Card", 0.40},
	{"Debit Card", 0.20},
	{"Bank Transfer", 0.30},
	{"Voucher", 0.10},
}

// Generate produces n synthetic sales spread over the trailing year,
// deterministic for a given seed up to the current day.
func Generate(n int, seed int64) []models.Sale {
	return GenerateFrom(n, seed, time.Now().UTC().Truncate(24*time.Hour))
}

// GenerateFrom is Generate with an explicit end date, so callers that need
// full reproducibility can pin the time axis.
func GenerateFrom(n int, seed int64, end time.Time) []models.Sale {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	start := end.AddDate(0, 0, -(generatedDays - 1))

	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = rng.Intn(generatedDays)
	}
	slices.Sort(offsets)

	sales := make([]models.Sale, 0, n)
	for i := 0; i < n; i++ {
		category := categories[rng.Intn(len(categories))]
		region := regions[rng.Intn(len(regions))]
		cities := citiesByRegion[region]
		city := cities[rng.Intn(len(cities))]

		band := categoryBands[category]
		unitPrice := decimal.NewFromFloat(band.min + rng.Float64()*(band.max-band.min)).Round(2)
		quantity := 1 + rng.Intn(9)
		discount := pickWeighted(rng, discountLevels)

		gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		amount := gross.Mul(decimal.NewFromFloat(1 - discount)).Round(2)

		sales = append(sales, models.Sale{
			ID:            fmt.Sprintf("S%05d", i+1),
			Date:          start.AddDate(0, 0, offsets[i]),
			Category:      category,
			Product:       fmt.Sprintf("%s Item %d", category, i+1),
			Region:        region,
			City:          city,
			Seller:        fmt.Sprintf("Seller %02d", 1+rng.Intn(20)),
			PaymentMethod: pickWeighted(rng, paymentWeights),
			CustomerID:    fmt.Sprintf("C%04d", 1000+rng.Intn(9000)),
			UnitPrice:     unitPrice.InexactFloat64(),
			Quantity:      quantity,
			GrossAmount:   gross.InexactFloat64(),
			Discount:      discount,
			Amount:        amount.InexactFloat64(),
			Status:        pickWeighted(rng, statusWeights),
		})
	}

	return sales
}

func pickWeighted[T any](rng *rand.Rand, choices []weighted[T]) T {
	total := 0.0
	for _, c := range choices {
		total += c.weight
	}

	r := rng.Float64() * total
	for _, c := range choices {
		r -= c.weight
		if r < 0 {
			return c.value
		}
	}
	return choices[len(choices)-1].value
}
