package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Envelope discriminante común a todas las respuestas JSON. Se embebe en cada
// respuesta de éxito para que el cuerpo quede plano: {"ok": true, ...resultado}.
type Envelope struct {
	OK bool `json:"ok"`
}

// Success envelope de respuesta exitosa.
func Success() Envelope { return Envelope{OK: true} }

// ErrorResponse cuerpo de error HTTP: {"ok": false, "error": "...", "code": "..."}.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewError construye un ErrorResponse.
func NewError(code, msg string) ErrorResponse {
	return ErrorResponse{OK: false, Error: msg, Code: code}
}
