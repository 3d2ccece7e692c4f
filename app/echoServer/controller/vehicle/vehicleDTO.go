package vehicle

type CreateVehicleReq struct {
	Name          string `json:"name" validate:"required"`
	Plate         string `json:"plate" validate:"required"`
	BrandID       int64  `json:"brand_id" validate:"required,gt=0"`
	Year          int    `json:"year" validate:"required,gte=1950"`
	Capacity      int    `json:"capacity" validate:"required,gt=0"`
	Color         string `json:"color" validate:"required"`
	Model         string `json:"model" validate:"required"`
	EngineNumber  string `json:"engine_number"`
	ChassisNumber string `json:"chassis_number"`
	VIN           string `json:"vin"`
	Status        string `json:"status" validate:"omitempty,oneof=Available Reserved Maintenance"`
}

type UpdateVehicleReq struct {
	Name          string `json:"name" validate:"required"`
	Plate         string `json:"plate" validate:"required"`
	BrandID       int64  `json:"brand_id" validate:"required,gt=0"`
	Year          int    `json:"year" validate:"required,gte=1950"`
	Capacity      int    `json:"capacity" validate:"required,gt=0"`
	Color         string `json:"color" validate:"required"`
	Model         string `json:"model" validate:"required"`
	EngineNumber  string `json:"engine_number"`
	ChassisNumber string `json:"chassis_number"`
	VIN           string `json:"vin"`
	Status        string `json:"status" validate:"required,oneof=Available Reserved Maintenance"`
}
