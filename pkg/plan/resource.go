package plan

// Resource names a countable tenant resource governed by a tier cap.
type Resource string

const (
	// ResourceTechnicians counts technicians currently flagged active.
	ResourceTechnicians Resource = "technicians"
	// ResourceWorkOrders counts work orders created in the current calendar month.
	ResourceWorkOrders Resource = "work_orders"
)

// LimitFor returns the cap governing the given resource, and false for
// resources the record does not govern.
func (l Limits) LimitFor(res Resource) (Limit, bool) {
	switch res {
	case ResourceTechnicians:
		return l.MaxTechnicians, true
	case ResourceWorkOrders:
		return l.MaxWorkOrdersPerMonth, true
	}
	return Limit{}, false
}
