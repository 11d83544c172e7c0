package domain

import (
	"regexp"
	"time"

	"github.com/sing9814/smartshopper-sub000/internal/wardrobe/errors"
)

var (
	nameHasAlnum = regexp.MustCompile(`[A-Za-z0-9]`)
	priceFormat  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// PurchaseCategory is the denormalized category copy stored on a purchase.
// It is a value copy: editing or deleting the source custom category does not
// propagate here, so the text can go stale until the purchase is re-saved.
type PurchaseCategory struct {
	Category    string       `json:"category"`
	SubCategory *Subcategory `json:"subCategory"`
}

// Purchase is one tracked clothing purchase. Prices are integer cents.
type Purchase struct {
	Key           string           `json:"key"`
	Name          string           `json:"name"`
	Category      PurchaseCategory `json:"category"`
	Note          string           `json:"note"`
	Wears         []time.Time      `json:"wears"`
	RegularPrice  *int64           `json:"regularPrice"`
	PaidPrice     int64            `json:"paidPrice"`
	DatePurchased string           `json:"datePurchased"`
	DateCreated   time.Time        `json:"dateCreated"`
	Edited        *time.Time       `json:"edited"`
}

// WearCount is the number of recorded wears.
func (p *Purchase) WearCount() int {
	return len(p.Wears)
}

// PurchaseInput is the editable form of a purchase, with prices still in
// their dollar-string form. Validation runs here, before any store call.
type PurchaseInput struct {
	Name          string           `json:"name"`
	Category      PurchaseCategory `json:"category"`
	Note          string           `json:"note"`
	RegularPrice  string           `json:"regularPrice"`
	PaidPrice     string           `json:"paidPrice"`
	DatePurchased string           `json:"datePurchased"`
}

// Validate checks the form fields. The name must contain at least one
// alphanumeric character, prices must be decimal amounts with at most two
// fractional digits, and the paid price must be below the regular price when
// both are given.
func (in *PurchaseInput) Validate() error {
	if !nameHasAlnum.MatchString(in.Name) {
		return errors.ErrNameRequired
	}
	if in.PaidPrice == "" || !priceFormat.MatchString(in.PaidPrice) {
		return errors.ErrInvalidPrice
	}
	if in.RegularPrice != "" {
		if !priceFormat.MatchString(in.RegularPrice) {
			return errors.ErrInvalidPrice
		}
		if ToCents(in.PaidPrice) >= ToCents(in.RegularPrice) {
			return errors.ErrPaidAboveRegular
		}
	}
	if in.DatePurchased != "" {
		if _, err := time.Parse("2006-01-02", in.DatePurchased); err != nil {
			return errors.NewValidationError("Purchase date must be YYYY-MM-DD")
		}
	}
	return nil
}
