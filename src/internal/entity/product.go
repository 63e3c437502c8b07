package entity

import "github.com/shopspring/decimal"

// Product is a data bundle as served by the catalog endpoint. Description is
// free text and may embed a bundle size ("10GB", "2.5 GB"); it is parsed
// best-effort at aggregation time, never here.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promoPrice,omitempty"`
	OnPromo     bool             `json:"onPromo"`
	Stock       int              `json:"stock"`
}

// EffectivePrice is the promo price when the promo is flagged and present,
// else the base price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnPromo && p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}
