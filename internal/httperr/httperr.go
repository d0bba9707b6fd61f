package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromBusiness traduz um erro de negócio para a resposta HTTP adequada.
// Conflitos voltam 409 para o cliente poder oferecer "escolha outro horário".
func FromBusiness(c *gin.Context, err error) {
	code, ok := BusinessCode(err)
	if !ok {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch code {
	case CodeSlotConflict, CodeOutsideWorkingHours, CodeTimeOffConflict:
		Conflict(c, code, "Horário indisponível.")
	case CodeServiceNotFound, CodeStylistNotFound, CodeNotFound:
		NotFound(c, code, "Registro não encontrado.")
	case CodeTenantNotIdentified:
		Unauthorized(c, code, "Tenant não identificado.")
	case CodeTenantSuspended:
		Forbidden(c, code, "Conta suspensa.")
	default:
		BadRequest(c, code, "Dados inválidos.")
	}
}
