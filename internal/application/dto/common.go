package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse respuesta mínima de endpoints que solo confirman recepción
// (el tracking de clics responde success incluso ante códigos desconocidos).
type SuccessResponse struct {
	Success bool `json:"success"`
}
