package demo

import "errors"

var (
	ErrNotLoggedIn   = errors.New("debes iniciar sesión")
	ErrNotFound      = errors.New("registro no encontrado")
	ErrForbidden     = errors.New("no tienes permiso para esta acción")
	ErrInvalidStatus = errors.New("estado de asesoría no válido")
)
