package entity

import "github.com/shopspring/decimal"

type CartItem struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	Product      Product `json:"product"`
	MobileNumber string  `json:"mobileNumber"`
	Quantity     int     `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Total sums effective prices over the cart. Quantity is effectively always 1
// upstream but is honored anyway.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		qty := c.Items[i].Quantity
		if qty < 1 {
			qty = 1
		}
		price := c.Items[i].Product.EffectivePrice()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// FindLine returns the first cart line with the same product and mobile
// number, used for the duplicate-line confirmation check.
func (c *Cart) FindLine(productID, mobileNumber string) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID && c.Items[i].MobileNumber == mobileNumber {
			return &c.Items[i]
		}
	}
	return nil
}
