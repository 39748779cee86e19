package schedule

import (
	"testing"

	"github.com/serviplan/agenda-api/internal/httperr"
)

func TestNormalizeHora(t *testing.T) {
	got, err := NormalizeHora("09:00")
	if err != nil || got != "09:00:00" {
		t.Fatalf("HH:MM debe completarse con segundos: %q, %v", got, err)
	}

	got, err = NormalizeHora("09:00:30")
	if err != nil || got != "09:00:30" {
		t.Fatalf("HH:MM:SS debe pasar intacto: %q, %v", got, err)
	}

	for _, invalida := range []string{"", "9:00", "25:00", "09:61", "mediodía"} {
		if _, err := NormalizeHora(invalida); !httperr.IsBusiness(err, "validation_error") {
			t.Fatalf("%q debía rechazarse, err=%v", invalida, err)
		}
	}
}

func TestValidarRangoHoras(t *testing.T) {
	ini, fin, err := ValidarRangoHoras("09:00", "10:30")
	if err != nil {
		t.Fatalf("rango válido rechazado: %v", err)
	}
	if ini != "09:00:00" || fin != "10:30:00" {
		t.Fatalf("rango no normalizado: %s .. %s", ini, fin)
	}

	if _, _, err := ValidarRangoHoras("10:00", "09:00"); !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("inicio posterior al fin debía rechazarse, err=%v", err)
	}
	if _, _, err := ValidarRangoHoras("10:00", "10:00"); !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("rango vacío debía rechazarse, err=%v", err)
	}
}

func TestDiaSemana(t *testing.T) {
	if !DiaSemana("lunes").Valido() || DiaSemana("Lunes").Valido() {
		t.Fatal("los días se validan en minúsculas")
	}
	if DiaSemana("feriado").Valido() {
		t.Fatal("día inexistente aceptado")
	}
}
