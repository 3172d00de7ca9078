package domain

// Customer is an entry in the customer directory. A customer can own any
// number of documents; one that owns at least one cannot be deleted.
type Customer struct {
	CustomerID     int64  `json:"id" db:"customer_id"`
	Name           string `json:"name" db:"name"`
	Contact        string `json:"contact" db:"contact"`               // Nullable in DB, empty string here
	Vehicle        string `json:"vehicle" db:"vehicle"`               // Nullable
	RegistrationNo string `json:"registrationNo" db:"registration_no"` // Nullable
	Timestamps
}
