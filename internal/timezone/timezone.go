package timezone

import "time"

// El sistema opera en un solo huso horario de pared; las fechas y horas
// cruzan la frontera como texto sin conversión.
const DefaultTimezone = "America/Bogota"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Hoy devuelve la fecha local actual en YYYY-MM-DD. Los resolvers reciben
// este valor como parámetro, nunca leen el reloj por su cuenta.
func Hoy() string {
	return Now().Format("2006-01-02")
}
