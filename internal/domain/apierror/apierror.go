package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind clasifica el error normalizado. El código de features decide por
// Kind (errors.As + switch), nunca inspeccionando el cuerpo crudo.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork           // status 0, sin respuesta del backend
	KindAuth              // 401
	KindValidation        // 400, 406, 409, 422
	KindNotFound          // 404
	KindForbidden         // 403
	KindRateLimited       // 429
	KindServer            // 5xx
)

// String nombre legible del Kind para logs.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Body es la forma de error en el wire: {success:false, message, data:null, error}.
type Body struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Detail  string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"` // mensajes "campo: detalle" en errores de validación
}

// Error es el error normalizado que emite la capa HTTP del cliente.
// Todo error que llega a features tiene esta forma.
type Error struct {
	Kind   Kind
	Status int
	Body   Body
	// Fields mapa campo -> mensaje, solo en KindValidation.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Body.Message)
	}
	return fmt.Sprintf("api: %s (%d)", e.Kind, e.Status)
}

// Unwrap expone la causa original (error de red, etc.).
func (e *Error) Unwrap() error { return e.cause }

// Network construye el error para fallas sin respuesta HTTP (status 0).
func Network(cause error) *Error {
	return &Error{
		Kind:   KindNetwork,
		Status: 0,
		Body:   Body{Success: false, Message: "No se pudo contactar al servidor", Detail: errDetail(cause)},
		cause:  cause,
	}
}

// AuthFailed construye la falla de autenticación estándar (refresh imposible
// o agotado). Status 401, sin llamada de red implicada.
func AuthFailed(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{
		Kind:   KindAuth,
		Status: 401,
		Body:   Body{Success: false, Message: message},
	}
}

// FromResponse normaliza una respuesta HTTP de error. Acepta cuerpos con la
// forma estándar, cuerpos arbitrarios o vacíos.
func FromResponse(status int, raw []byte) *Error {
	e := &Error{Kind: kindFor(status), Status: status}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e.Body); err != nil {
			e.Body = Body{Message: strings.TrimSpace(string(raw))}
		}
	}
	e.Body.Success = false
	if e.Body.Message == "" {
		e.Body.Message = defaultMessage(e.Kind)
	}

	if e.Kind == KindValidation {
		e.Fields = parseFieldErrors(e.Body)
	}
	return e
}

func kindFor(status int) Kind {
	switch {
	case status == 0:
		return KindNetwork
	case status == 401:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status == 403:
		return KindForbidden
	case status == 429:
		return KindRateLimited
	case status == 400, status == 406, status == 409, status == 422:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func defaultMessage(k Kind) string {
	switch k {
	case KindAuth:
		return "Authentication failed"
	case KindValidation:
		return "Validation failed"
	case KindNotFound:
		return "Recurso no encontrado"
	case KindForbidden:
		return "Acceso denegado"
	case KindRateLimited:
		return "Demasiadas solicitudes, intente más tarde"
	case KindServer:
		return "Error del servidor"
	default:
		return "Error inesperado"
	}
}

// parseFieldErrors convierte los mensajes "campo: detalle" en un mapa
// campo -> detalle, partiendo cada mensaje por su primer dos puntos.
// Mensajes sin dos puntos van bajo la clave "general".
func parseFieldErrors(b Body) map[string]string {
	msgs := b.Errors
	// Algunos backends mandan la lista dentro de data.
	if len(msgs) == 0 {
		if arr, ok := b.Data.([]any); ok {
			for _, v := range arr {
				if s, ok := v.(string); ok {
					msgs = append(msgs, s)
				}
			}
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(msgs))
	for _, m := range msgs {
		field, msg, found := strings.Cut(m, ":")
		if !found {
			fields["general"] = strings.TrimSpace(m)
			continue
		}
		fields[strings.TrimSpace(field)] = strings.TrimSpace(msg)
	}
	return fields
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// As extrae el *Error normalizado de cualquier error (o nil).
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind indica si err es un error normalizado del Kind dado.
func IsKind(err error, k Kind) bool {
	e := As(err)
	return e != nil && e.Kind == k
}

// Fields devuelve el mapa de errores de campo si err es de validación.
func Fields(err error) map[string]string {
	if e := As(err); e != nil && e.Kind == KindValidation {
		return e.Fields
	}
	return nil
}
