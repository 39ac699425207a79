package entities

import "time"

// Customer and Vehicle are owned by the registration service; this service
// reads them for reference checks and increments the customer spend/visit
// counters when a payment completes.

type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	TotalSpent float64   `json:"total_spent"`
	VisitCount int       `json:"visit_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type Vehicle struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"license_plate,omitempty"`
	Mileage      int    `json:"mileage"`
}
