package app

import (
	"sort"
	"strings"

	"woodshop/internal/domain"
)

// Products with fewer units than this count as low stock on the dashboard.
const lowStockThreshold = 10

// VendorStats summarises a vendor's products for the dashboard cards.
type VendorStats struct {
	Products      int     `json:"products"`
	TotalStock    int     `json:"totalStock"`
	TotalSales    int     `json:"totalSales"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"averageRating"`
	LowStock      int     `json:"lowStock"`
}

// CategoryPoint is a per-category slice of the dashboard breakdown.
type CategoryPoint struct {
	Category string  `json:"category"`
	Products int     `json:"products"`
	Revenue  float64 `json:"revenue"`
}

// Summarize computes the dashboard totals over a product list. Revenue is the
// price-times-sales estimate the dashboard displays, not settled turnover.
func Summarize(products []domain.Product) VendorStats {
	stats := VendorStats{Products: len(products)}
	if len(products) == 0 {
		return stats
	}

	var ratingSum float64
	for _, p := range products {
		stats.TotalStock += p.Stock
		stats.TotalSales += p.Sales
		stats.Revenue += p.Price * float64(p.Sales)
		ratingSum += p.Rating
		if p.Stock < lowStockThreshold {
			stats.LowStock++
		}
	}
	stats.AverageRating = ratingSum / float64(len(products))
	return stats
}

// ByCategory breaks the product list down per category, ordered by revenue
// descending. Categories are compared trimmed and case-insensitively, keeping
// the first spelling seen.
func ByCategory(products []domain.Product) []CategoryPoint {
	index := make(map[string]int)
	points := make([]CategoryPoint, 0)

	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Category))
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, CategoryPoint{Category: strings.TrimSpace(p.Category)})
		}
		points[i].Products++
		points[i].Revenue += p.Price * float64(p.Sales)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Revenue > points[j].Revenue
	})
	return points
}

// TopSellers returns the n best-selling products, reusing the catalog query
// ordering so ties keep their fetch order.
func TopSellers(products []domain.Product, n int) []domain.Product {
	if n <= 0 {
		return nil
	}
	q := domain.Query{Sort: domain.SortBySales, Direction: domain.Descending}
	ranked := q.Apply(products)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
