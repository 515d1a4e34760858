package stock

import (
	"errors"
	"time"

	"autoparts-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Both the sale-invoice path and the order-completion path go through this
// package, so the floor-at-zero rule lives in exactly one place.

// PurchaseReceipt carries the per-item values a purchase invoice applies to
// a product.
type PurchaseReceipt struct {
	Quantity      int
	BuyingPrice   float64
	SellingPrice  float64
	MarginPercent float64
	MinQuantity   int
	SupplierID    *uint
}

// lockProduct loads the product for update inside tx. Postgres takes a row
// lock so two concurrent mutations of the same product serialize; sqlite's
// single writer already guarantees that.
func lockProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p models.Product
	if err := q.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ApplyPurchase increases stock for a received item. A zero stock level is
// treated as uninitialized rather than sold out: the first purchase sets the
// quantities outright instead of accumulating on top of zero.
// Returns false when the product no longer exists (stock untouched).
func ApplyPurchase(tx *gorm.DB, productID uint, r PurchaseReceipt) (bool, error) {
	p, err := lockProduct(tx, productID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}

	newInitial := p.InitialQuantity + r.Quantity
	if p.InitialQuantity == 0 {
		newInitial = r.Quantity
	}
	newCurrent := p.CurrentQuantity + r.Quantity
	if p.CurrentQuantity == 0 {
		newCurrent = newInitial
	}

	p.InitialQuantity = newInitial
	p.CurrentQuantity = newCurrent
	p.BuyingPrice = r.BuyingPrice
	p.SellingPrice = r.SellingPrice
	p.MarginPercent = r.MarginPercent
	p.MinQuantity = r.MinQuantity
	if p.SupplierID == nil && r.SupplierID != nil {
		p.SupplierID = r.SupplierID
	}
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ApplySale decrements stock for a sold item, floor-clamped at zero
// (overselling is absorbed, never rejected), and overwrites the selling
// price when the item carries one.
// Returns false when the product no longer exists (stock untouched).
func ApplySale(tx *gorm.DB, productID uint, quantity int, sellingPrice *float64) (bool, error) {
	p, err := lockProduct(tx, productID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}

	p.CurrentQuantity = clampedSub(p.CurrentQuantity, quantity)
	if sellingPrice != nil && *sellingPrice > 0 {
		p.SellingPrice = *sellingPrice
	}
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Decrement is the order-completion flavor of ApplySale: quantity out,
// prices untouched.
func Decrement(tx *gorm.DB, productID uint, quantity int) (bool, error) {
	return ApplySale(tx, productID, quantity, nil)
}

func clampedSub(current, qty int) int {
	if qty >= current {
		return 0
	}
	return current - qty
}
