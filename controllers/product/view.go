package productcontroller

import "github.com/sanjaysagar12/EcoFinds/models"

// ProductView is a product joined with its seller summary and the average
// rating over its reviews.
type ProductView struct {
	models.Product
	Seller        *models.PublicUser `json:"seller,omitempty"`
	AverageRating float64            `json:"averageRating"`
	ReviewCount   int                `json:"reviewCount"`
}

func toView(p models.Product) ProductView {
	view := ProductView{Product: p, ReviewCount: len(p.Reviews)}

	if p.Seller != nil {
		pub := p.Seller.Public()
		view.Seller = &pub
	}
	if len(p.Reviews) > 0 {
		sum := 0
		for _, r := range p.Reviews {
			sum += r.Rating
		}
		view.AverageRating = float64(sum) / float64(len(p.Reviews))
	}
	return view
}

func toViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}
