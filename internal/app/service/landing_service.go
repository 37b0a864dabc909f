package service

import (
	"sort"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/internal/app/store"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

const bestsellerLimit = 3

// LandingContent is the marketing page payload: static hero and promo copy
// plus lookups derived from the current catalog.
type LandingContent struct {
	Hero        Hero            `json:"hero"`
	Promo       Promo           `json:"promo"`
	Collections []CategoryCount `json:"collections"`
	Bestsellers []model.Product `json:"bestsellers"`
}

type Hero struct {
	Tagline  string `json:"tagline"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type Promo struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type LandingService interface {
	GetLanding() (LandingContent, error)
}

type landingService struct {
	catalog *store.CatalogStore
}

func NewLandingService(catalog *store.CatalogStore) LandingService {
	return &landingService{catalog: catalog}
}

func (s *landingService) GetLanding() (LandingContent, error) {
	products, err := s.catalog.Products()
	if err != nil {
		logger.Error("Failed to build landing content", err, nil)
		return LandingContent{}, ErrCatalogUnavailable
	}

	content := LandingContent{
		Hero: Hero{
			Tagline:  "New Season • New Picks",
			Title:    "Curated essentials, delivered fast.",
			Subtitle: "Shop handpicked styles and everyday basics with free returns and same-day dispatch on most orders.",
		},
		Promo: Promo{
			Message: "Limited time: get 10% off larger orders with code",
			Code:    "WELCOME10",
		},
		Collections: CategoryCounts(products),
		Bestsellers: bestsellers(products, bestsellerLimit),
	}

	logger.Debug("Landing content built", map[string]interface{}{
		"collections": len(content.Collections),
		"bestsellers": len(content.Bestsellers),
	})
	return content, nil
}

// bestsellers picks the top rated products, review count breaking ties.
// Unrated products sort last.
func bestsellers(products []model.Product, limit int) []model.Product {
	ranked := make([]model.Product, len(products))
	copy(ranked, products)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ratingOf(ranked[i]), ratingOf(ranked[j])
		if ri.Rate != rj.Rate {
			return ri.Rate > rj.Rate
		}
		return ri.Count > rj.Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func ratingOf(p model.Product) model.Rating {
	if p.Rating == nil {
		return model.Rating{}
	}
	return *p.Rating
}
