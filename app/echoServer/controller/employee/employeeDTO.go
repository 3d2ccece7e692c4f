package employee

type CreateEmployeeReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=employee manager"`
	Password  string `json:"password" validate:"required,min=8"`
}

type UpdateEmployeeReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=employee manager"`
}
