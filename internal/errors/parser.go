package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user facing message.
type ErrorInfo struct {
	Code    string // see codes.go
	Message string // shown to the user
}

// ParseError turns a storage or service error into a code and a safe message.
// Driver details never reach the client.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocurrió un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. gorm errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return parseDuplicateKeyError(errStr, context)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return parseForeignKeyError(errStr, context)
	}

	// 2. driver text (postgres and sqlite)
	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "violates not-null constraint") || strings.Contains(errStrLower, "not null constraint failed") {
		return ErrorInfo{Code: ValidationRequired, Message: "Falta un campo obligatorio"}
	}
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Los datos ingresados no son válidos"}
	}

	// 3. network
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "No se pudo conectar con un servicio externo. Intente nuevamente",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// IsUniqueViolation reports whether err is a unique index violation from
// gorm's error translation or from the raw postgres/sqlite driver text.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint")
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "route_stops") || strings.Contains(context, "stop"):
		return ErrorInfo{Code: RouteStopDuplicate, Message: "El lugar ya forma parte de la ruta"}
	case strings.Contains(errLower, "saved_routes") || strings.Contains(context, "saved"):
		return ErrorInfo{Code: RouteSavedDuplicate, Message: "La ruta ya está guardada"}
	case strings.Contains(errLower, "favorites") || strings.Contains(context, "favorite"):
		return ErrorInfo{Code: FavoriteDuplicate, Message: "El lugar ya está marcado"}
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "El correo ya está registrado"}
	case strings.Contains(errLower, "username"):
		return ErrorInfo{Code: AuthUsernameExists, Message: "El nombre de usuario ya existe"}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "El registro ya existe",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Existen datos relacionados que impiden la eliminación",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidReference,
		Message: "El dato referenciado no existe",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "stop"):
		return "Parada no encontrada"
	case strings.Contains(contextLower, "route"):
		return "Ruta no encontrada"
	case strings.Contains(contextLower, "place"):
		return "Lugar no encontrado"
	case strings.Contains(contextLower, "user"):
		return "Usuario no encontrado"
	case strings.Contains(contextLower, "review"):
		return "Reseña no encontrada"
	case strings.Contains(contextLower, "event"):
		return "Evento no encontrado"
	case strings.Contains(contextLower, "province"):
		return "Provincia no encontrada"
	case strings.Contains(contextLower, "category"):
		return "Categoría no encontrada"
	}

	return "No se encontró el recurso solicitado"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create") || strings.Contains(contextLower, "add"):
		return "Error al registrar. Intente nuevamente"
	case strings.Contains(contextLower, "update"):
		return "Error al actualizar. Intente nuevamente"
	case strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "remove"):
		return "Error al eliminar. Intente nuevamente"
	}

	return "Ocurrió un error en el servidor. Intente nuevamente"
}

// ParseAndRespond parses err and writes it as the response body.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
