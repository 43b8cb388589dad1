package types

type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UserSettings is the shape of the User.Settings JSON column.
type UserSettings struct {
	// City for the decorative dashboard weather lookup.
	City string `json:"city,omitempty"`
	// UpcomingDays overrides the default upcoming window when > 0.
	UpcomingDays int `json:"upcoming_days,omitempty"`
}
