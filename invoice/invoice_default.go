package invoice

import "github.com/shopspring/decimal"

// DefaultLineItems is the fallback template used when a client has no
// line items configured: total cost of employment, a 10% management fee,
// 7.5% VAT on the fee, and the grand total.
func DefaultLineItems() []LineItemSpec {
	return []LineItemSpec{
		{
			ID:          "total_cost_of_employment",
			Name:        "Total Cost of Employment",
			Order:       1,
			FormulaType: FormulaComponent,
			DependsOn:   KeyTotalEmployerCosts,
		},
		{
			ID:            "management_fee",
			Name:          "Management fee @10%",
			Order:         2,
			FormulaType:   FormulaPercentage,
			DependsOn:     "TOTAL_MANAGEMENT_FEES",
			BaseComponent: KeyTotalEmployerCosts,
			Percentage:    decimal.NewFromInt(10),
		},
		{
			ID:            "vat_on_management_fee",
			Name:          "VAT on Management fee @7.5%",
			Order:         3,
			FormulaType:   FormulaPercentage,
			DependsOn:     "VAT_ON_MGT_FEE",
			BaseComponent: "TOTAL_MANAGEMENT_FEES",
			Percentage:    decimal.RequireFromString("7.5"),
		},
		{
			ID:          "total_invoice_value",
			Name:        "Total Invoice Value",
			Order:       4,
			FormulaType: FormulaSum,
			SumItems: []string{
				"total_cost_of_employment",
				"management_fee",
				"vat_on_management_fee",
			},
		},
	}
}
