package catalog

// WoodType порода древесины из каталога
type WoodType struct {
	Code     string `json:"code"`
	Label    string `json:"label"`
	Hardwood bool   `json:"hardwood"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
