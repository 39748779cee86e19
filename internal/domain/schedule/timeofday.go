package schedule

import (
	"time"

	"github.com/serviplan/agenda-api/internal/httperr"
)

// NormalizeHora lleva una hora del día al formato fijo HH:MM:SS.
// Entradas HH:MM se completan con segundos en cero.
func NormalizeHora(hora string) (string, error) {
	if len(hora) == 5 {
		hora += ":00"
	}
	if _, err := time.Parse("15:04:05", hora); err != nil {
		return "", httperr.ErrBusiness("validation_error")
	}
	return hora, nil
}

// HoraAntes reporta inicio < fin. Con el formato HH:MM:SS de ancho fijo
// la comparación lexicográfica coincide con la temporal.
func HoraAntes(inicio, fin string) bool {
	return inicio < fin
}

// ValidarRangoHoras normaliza ambos extremos y exige inicio < fin.
func ValidarRangoHoras(inicio, fin string) (string, string, error) {
	ini, err := NormalizeHora(inicio)
	if err != nil {
		return "", "", err
	}
	f, err := NormalizeHora(fin)
	if err != nil {
		return "", "", err
	}
	if !HoraAntes(ini, f) {
		return "", "", httperr.ErrBusiness("validation_error")
	}
	return ini, f, nil
}
