package order

// derivationRule maps a predicate over line item statuses to an order status.
type derivationRule struct {
	name    string
	matches func(statuses []ProductStatus) bool
	result  Status
}

// derivationRules is evaluated top to bottom; the first matching rule wins.
// Order matters: "all" predicates hold vacuously for an empty list.
var derivationRules = []derivationRule{
	{name: "no products", matches: isEmpty, result: PendingApproval},
	{name: "all cancelled", matches: all(ProductCancelled), result: Cancelled},
	{name: "all pending", matches: all(ProductPending), result: PendingApproval},
	{name: "all ready", matches: all(ProductReady), result: Ready},
	{name: "all dispatched", matches: all(ProductDispatched), result: Dispatched},
	{name: "all delivered", matches: all(ProductDelivered), result: Delivered},
	{
		name: "fulfillment in progress",
		matches: anyOf(
			ProductReady,
			ProductPartiallyReady,
			ProductDispatched,
			ProductPartiallyDispatched,
			ProductDelivered,
			ProductPartiallyDelivered,
		),
		result: PartialFulfillment,
	},
	{name: "otherwise", matches: func([]ProductStatus) bool { return true }, result: Approved},
}

// DeriveStatus computes the order status from the statuses of its line items.
// It is a pure function of its input.
func DeriveStatus(statuses []ProductStatus) Status {
	status, _ := DeriveStatusWithRule(statuses)
	return status
}

// DeriveStatusWithRule is DeriveStatus that also returns the name of the rule that matched.
func DeriveStatusWithRule(statuses []ProductStatus) (Status, string) {
	for _, rule := range derivationRules {
		if rule.matches(statuses) {
			return rule.result, rule.name
		}
	}
	// unreachable, the last rule always matches
	return Approved, "otherwise"
}

func isEmpty(statuses []ProductStatus) bool {
	return len(statuses) == 0
}

func all(want ProductStatus) func([]ProductStatus) bool {
	return func(statuses []ProductStatus) bool {
		for _, s := range statuses {
			if s != want {
				return false
			}
		}
		return true
	}
}

func anyOf(wanted ...ProductStatus) func([]ProductStatus) bool {
	return func(statuses []ProductStatus) bool {
		for _, s := range statuses {
			for _, w := range wanted {
				if s == w {
					return true
				}
			}
		}
		return false
	}
}
