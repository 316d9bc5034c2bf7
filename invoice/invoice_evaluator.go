package invoice

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	"go-payrun/apperror"
	invoiceerrors "go-payrun/invoice/errors"
)

const moneyPlaces = 2

// Evaluate computes the configured line items against the seed table.
// Items are stable-sorted by Order, then evaluated in dependency order:
// references resolve to another item's id, another item's depends_on
// alias, or a seed key, in that precedence. A reference that resolves to
// nothing evaluates as zero. The returned rows follow the configured
// order; only the computation order is topological, so a formula may
// reference an item configured after it.
//
// An empty item list falls back to the standard four-line template.
func Evaluate(items []LineItemSpec, seed map[string]decimal.Decimal) ([]LineItemValue, error) {
	if len(items) == 0 {
		items = DefaultLineItems()
	}

	ordered := make([]LineItemSpec, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	byID := make(map[string]int, len(ordered))
	byAlias := make(map[string]int, len(ordered))
	for i, item := range ordered {
		if item.ID == "" {
			return nil, apperror.Wrap(
				fmt.Errorf("line item %q at position %d", item.Name, i),
				apperror.CodeInvalidInput,
				invoiceerrors.ErrMissingLineItemID.Message,
				http.StatusBadRequest,
			)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, apperror.Wrap(
				fmt.Errorf("line item id %q", item.ID),
				apperror.CodeInvalidInput,
				invoiceerrors.ErrDuplicateLineItemID.Message,
				http.StatusBadRequest,
			)
		}
		byID[item.ID] = i
		if item.DependsOn != "" {
			if _, exists := byAlias[item.DependsOn]; !exists {
				byAlias[item.DependsOn] = i
			}
		}
	}

	// resolve maps a reference key to the providing item index, or -1 for
	// a seed or unknown key. An item never provides its own references.
	resolve := func(self int, key string) int {
		if i, ok := byID[key]; ok && i != self {
			return i
		}
		if i, ok := byAlias[key]; ok && i != self {
			return i
		}
		return -1
	}

	deps := make([][]int, len(ordered))
	for i, item := range ordered {
		for _, key := range itemReferences(item) {
			if provider := resolve(i, key); provider >= 0 {
				deps[i] = append(deps[i], provider)
			}
		}
	}

	evalOrder, err := topologicalOrder(ordered, deps)
	if err != nil {
		return nil, err
	}

	table := make(map[string]decimal.Decimal, len(seed)+2*len(ordered))
	for key, value := range seed {
		table[key] = value
	}

	values := make([]decimal.Decimal, len(ordered))
	for _, i := range evalOrder {
		item := ordered[i]
		value := evaluateItem(item, table)
		values[i] = value

		// Publish under the id and the depends_on alias so later formulas
		// can use either handle.
		table[item.ID] = value
		if item.DependsOn != "" && byAlias[item.DependsOn] == i {
			table[item.DependsOn] = value
		}
	}

	rows := make([]LineItemValue, len(ordered))
	for i, item := range ordered {
		rows[i] = LineItemValue{
			ItemNumber: i + 1,
			Name:       item.Name,
			Value:      values[i],
		}
	}
	return rows, nil
}

// itemReferences lists the keys an item's formula reads.
func itemReferences(item LineItemSpec) []string {
	switch item.FormulaType {
	case FormulaComponent:
		if item.DependsOn != "" {
			return []string{item.DependsOn}
		}
	case FormulaPercentage, FormulaPercentageSubtraction:
		if item.BaseComponent != "" {
			return []string{item.BaseComponent}
		}
		if item.DependsOn != "" {
			return []string{item.DependsOn}
		}
	case FormulaSum:
		return item.SumItems
	}
	return nil
}

// topologicalOrder returns an evaluation order respecting deps, breaking
// ties by configured position so unrelated items evaluate in the order
// the client laid them out.
func topologicalOrder(items []LineItemSpec, deps [][]int) ([]int, error) {
	pending := make([]int, len(items))
	for i, d := range deps {
		pending[i] = len(d)
	}

	done := make([]bool, len(items))
	order := make([]int, 0, len(items))

	for len(order) < len(items) {
		picked := -1
		for i := range items {
			if !done[i] && pending[i] == 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			var stuck []string
			for i, item := range items {
				if !done[i] {
					stuck = append(stuck, item.ID)
				}
			}
			return nil, apperror.Wrap(
				fmt.Errorf("unresolvable items: %v", stuck),
				apperror.CodeInvalidState,
				invoiceerrors.ErrCircularDependency.Message,
				http.StatusUnprocessableEntity,
			)
		}

		done[picked] = true
		order = append(order, picked)
		for i, d := range deps {
			if done[i] {
				continue
			}
			for _, provider := range d {
				if provider == picked {
					pending[i]--
				}
			}
		}
	}

	return order, nil
}

func evaluateItem(item LineItemSpec, table map[string]decimal.Decimal) decimal.Decimal {
	lookup := func(key string) decimal.Decimal {
		if value, ok := table[key]; ok {
			return value
		}
		return decimal.Zero
	}

	switch item.FormulaType {
	case FormulaComponent:
		return lookup(item.DependsOn).Round(moneyPlaces)

	case FormulaPercentage:
		base := item.BaseComponent
		if base == "" {
			base = item.DependsOn
		}
		return lookup(base).Mul(item.Percentage).Div(decimal.NewFromInt(100)).Round(moneyPlaces)

	case FormulaPercentageSubtraction:
		base := item.BaseComponent
		if base == "" {
			base = item.DependsOn
		}
		return lookup(base).Mul(item.Percentage).Div(decimal.NewFromInt(100)).Neg().Round(moneyPlaces)

	case FormulaSum:
		total := decimal.Zero
		for _, key := range item.SumItems {
			total = total.Add(lookup(key))
		}
		return total.Round(moneyPlaces)

	case FormulaFixedAmount:
		return item.Amount.Round(moneyPlaces)

	case FormulaPerStaff:
		return item.AmountPerStaff.Mul(lookup(KeyTotalStaffCount)).Round(moneyPlaces)

	default:
		// Unknown formula types are never fatal.
		return decimal.Zero
	}
}
