package user

// Snapshot is the plain-data projection of a User.
type Snapshot struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
	Credit  float64 `json:"credit"`
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:      u.id.String(),
		Name:    u.name,
		Address: u.address,
		Balance: u.balance.Float64(),
		Credit:  u.credit.Float64(),
	}
}
