package domain

// UserProfile is the per-account statistics object created by create_profile.
type UserProfile struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	TotalSold   int64  `json:"total_sold"`
	TotalBought int64  `json:"total_bought"`
	TotalEarned int64  `json:"total_earned"`
	TotalSpent  int64  `json:"total_spent"`
}
