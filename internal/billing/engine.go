package billing

import (
	"encoding/json"
	"fmt"

	"autoparts-backend/internal/models"
	"autoparts-backend/internal/stock"

	"gorm.io/gorm"
)

// ValidationError aborts invoice creation before or during the transaction
// and maps to a 400 at the HTTP layer.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ItemInput is the canonical line-item shape. The evolving frontends send
// the same values under several names (product_id / productId / id, ...),
// so UnmarshalJSON normalizes the aliases at the boundary and the engine
// only ever sees this struct.
type ItemInput struct {
	ProductID     uint
	ProductName   string
	Barcode       string
	BuyingPrice   float64
	MarginPercent float64
	SellingPrice  float64
	Quantity      int
	MinQuantity   int
	Total         float64
}

type itemAliases struct {
	ProductID   *uint `json:"product_id"`
	ProductIDCc *uint `json:"productId"`
	ID          *uint `json:"id"`

	ProductName   string `json:"product_name"`
	ProductNameCc string `json:"productName"`
	Name          string `json:"name"`

	Barcode string `json:"barcode"`

	BuyingPrice   *float64 `json:"buying_price"`
	BuyingPriceCc *float64 `json:"buyingPrice"`
	PurchasePrice *float64 `json:"purchase_price"`

	MarginPercent   *float64 `json:"margin_percent"`
	MarginPercentCc *float64 `json:"marginPercent"`

	SellingPrice   *float64 `json:"selling_price"`
	SellingPriceCc *float64 `json:"sellingPrice"`
	Price          *float64 `json:"price"`

	Quantity *int `json:"quantity"`
	Qty      *int `json:"qty"`

	MinQuantity   *int `json:"min_quantity"`
	MinQuantityCc *int `json:"minQuantity"`

	Total *float64 `json:"total"`
}

func (it *ItemInput) UnmarshalJSON(b []byte) error {
	var a itemAliases
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	it.ProductID = firstUint(a.ProductID, a.ProductIDCc, a.ID)
	it.ProductName = firstString(a.ProductName, a.ProductNameCc, a.Name)
	it.Barcode = a.Barcode
	it.BuyingPrice = firstFloat(a.BuyingPrice, a.BuyingPriceCc, a.PurchasePrice)
	it.MarginPercent = firstFloat(a.MarginPercent, a.MarginPercentCc)
	it.SellingPrice = firstFloat(a.SellingPrice, a.SellingPriceCc, a.Price)
	it.Quantity = firstInt(a.Quantity, a.Qty)
	it.MinQuantity = firstInt(a.MinQuantity, a.MinQuantityCc)
	if a.Total != nil {
		it.Total = *a.Total
	}
	return nil
}

func firstUint(vs ...*uint) uint {
	for _, v := range vs {
		if v != nil && *v != 0 {
			return *v
		}
	}
	return 0
}

func firstString(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstFloat(vs ...*float64) float64 {
	for _, v := range vs {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstInt(vs ...*int) int {
	for _, v := range vs {
		if v != nil {
			return *v
		}
	}
	return 0
}

// CreateInvoiceInput is the validated request for the transaction engine.
// Total is kept exactly as the caller computed it; the engine does not
// reconcile it against the item totals.
type CreateInvoiceInput struct {
	Type          models.InvoiceType
	SupplierID    *uint
	ClientID      *uint
	ClientName    string
	Total         float64
	AmountPaid    float64
	Items         []ItemInput
	CreatedByID   *uint
	CreatedByType models.ActorType
}

// StockWarning flags an item whose product row no longer exists. The item
// is still recorded on the invoice; only its stock mutation is skipped.
type StockWarning struct {
	Index     int    `json:"index"`
	ProductID uint   `json:"product_id"`
	Message   string `json:"message"`
}

// CreateInvoice persists header, items and stock mutations as one
// all-or-nothing unit. On any error nothing is visible afterwards: no
// invoice, no items, no stock change.
func CreateInvoice(db *gorm.DB, in CreateInvoiceInput) (*models.Invoice, []StockWarning, error) {
	if in.Type != models.InvoicePurchase && in.Type != models.InvoiceSale {
		return nil, nil, &ValidationError{Msg: "type must be purchase or sale"}
	}
	if len(in.Items) == 0 {
		return nil, nil, &ValidationError{Msg: "items must not be empty"}
	}

	inv := models.Invoice{
		Type:          in.Type,
		SupplierID:    in.SupplierID,
		ClientID:      in.ClientID,
		ClientName:    in.ClientName,
		Total:         in.Total,
		AmountPaid:    in.AmountPaid,
		Status:        paymentStatus(in.AmountPaid, in.Total),
		CreatedByID:   in.CreatedByID,
		CreatedByType: in.CreatedByType,
	}

	var warnings []StockWarning

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("create invoice header: %w", err)
		}

		for i, item := range in.Items {
			if item.ProductID == 0 || item.ProductName == "" {
				return &ValidationError{Msg: fmt.Sprintf("item %d is missing product id or name", i)}
			}

			row := models.InvoiceItem{
				InvoiceID:     inv.ID,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Barcode:       item.Barcode,
				PurchasePrice: item.BuyingPrice,
				MarginPercent: item.MarginPercent,
				SellingPrice:  item.SellingPrice,
				Quantity:      item.Quantity,
				MinQuantity:   item.MinQuantity,
				Total:         item.Total,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create invoice item %d: %w", i, err)
			}

			var found bool
			var err error
			if in.Type == models.InvoicePurchase {
				found, err = stock.ApplyPurchase(tx, item.ProductID, stock.PurchaseReceipt{
					Quantity:      item.Quantity,
					BuyingPrice:   item.BuyingPrice,
					SellingPrice:  item.SellingPrice,
					MarginPercent: item.MarginPercent,
					MinQuantity:   item.MinQuantity,
					SupplierID:    in.SupplierID,
				})
			} else {
				var price *float64
				if item.SellingPrice > 0 {
					price = &item.SellingPrice
				}
				found, err = stock.ApplySale(tx, item.ProductID, item.Quantity, price)
			}
			if err != nil {
				return fmt.Errorf("apply stock for item %d: %w", i, err)
			}
			if !found {
				// Keep the item on the invoice (historical/deleted product),
				// just tell the caller stock was not touched.
				warnings = append(warnings, StockWarning{
					Index:     i,
					ProductID: item.ProductID,
					Message:   "product not found, stock unchanged",
				})
			}
		}

		// Counter sales without a known customer get a placeholder record so
		// every sale invoice stays linked to a customer row.
		if in.Type == models.InvoiceSale && inv.ClientID == nil {
			client := models.Customer{Name: fmt.Sprintf("Walk-in customer #%d", inv.ID)}
			if err := tx.Create(&client).Error; err != nil {
				return fmt.Errorf("create placeholder customer: %w", err)
			}
			inv.ClientID = &client.ID
			if inv.ClientName == "" {
				inv.ClientName = client.Name
			}
			if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
				Updates(map[string]interface{}{"client_id": client.ID, "client_name": inv.ClientName}).Error; err != nil {
				return fmt.Errorf("link placeholder customer: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &inv, warnings, nil
}

func paymentStatus(paid, total float64) string {
	switch {
	case paid <= 0:
		return "pending"
	case paid >= total:
		return "paid"
	default:
		return "partial"
	}
}
