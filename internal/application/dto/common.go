package dto

// ErrorResponse cuerpo de error HTTP: {"error": "<mensaje>"}.
// El mensaje nunca incluye detalle interno (stack, SQL, causa de fallo de token).
type ErrorResponse struct {
	Error string `json:"error"`
}
