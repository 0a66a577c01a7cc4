package factory

import "github.com/shopspring/decimal"

// orderMoney is the derived monetary breakdown of an order or cart.
// total = subtotal + tax + shipping - discount, every component rounded to
// two decimal places before summing so the stored fields reconcile exactly.
type orderMoney struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

func computeOrderMoney(subtotal decimal.Decimal, taxRate float64, shipping, discount decimal.Decimal) orderMoney {
	sub := subtotal.Round(2)
	tax := sub.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	ship := shipping.Round(2)
	disc := discount.Round(2)
	return orderMoney{
		Subtotal: sub,
		Tax:      tax,
		Shipping: ship,
		Discount: disc,
		Total:    sub.Add(tax).Add(ship).Sub(disc).Round(2),
	}
}
