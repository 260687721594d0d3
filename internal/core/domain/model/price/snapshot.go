package price

// ItemSnapshot is the plain-data projection of an Item.
type ItemSnapshot struct {
	ID   string `json:"id"`
	Dish string `json:"dish"`
	Size string `json:"size"`
}

// Snapshot is the plain-data projection of a Price.
type Snapshot struct {
	ID    string         `json:"id"`
	Value float64        `json:"value"`
	Date  string         `json:"date"`
	Items []ItemSnapshot `json:"items"`
}

func (p *Price) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(p.items))
	for _, item := range p.items {
		items = append(items, ItemSnapshot{
			ID:   item.id.String(),
			Dish: item.dishID.String(),
			Size: item.size.String(),
		})
	}

	return Snapshot{
		ID:    p.id.String(),
		Value: p.value.Float64(),
		Date:  p.date.Format("2006-01-02"),
		Items: items,
	}
}
