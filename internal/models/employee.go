package models

// Employee is an HR record keyed by the administrator supplied EmployeeID.
type Employee struct {
	ID         string `json:"_id,omitempty"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// NewEmployee is the create payload accepted by POST /api/employees.
type NewEmployee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
