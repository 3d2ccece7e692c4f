package client

type UpdateProfileReq struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	DocumentNumber *string `json:"document_number"`
	LicenseNumber  *string `json:"license_number"`
}

type EmailChangeReq struct {
	NewEmail string `json:"new_email" validate:"required,email"`
}

type EmailChangeConfirmReq struct {
	Code string `json:"code" validate:"required,len=6"`
}
