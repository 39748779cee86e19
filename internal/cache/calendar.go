package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// CalendarCache guarda el calendario mensual resuelto por agenda. La vista se
// invalida completa tras cada mutación y se vuelve a resolver (corrección
// sobre eficiencia: el dataset por agenda y mes es pequeño). Redis caído o
// ausente degrada a resolver siempre contra la base.
type CalendarCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCalendarCache(rdb *redis.Client, ttl time.Duration) *CalendarCache {
	return &CalendarCache{rdb: rdb, ttl: ttl}
}

func calendarKey(agendaID uint, anio int, mes int) string {
	return fmt.Sprintf("calendario:%d:%04d-%02d", agendaID, anio, mes)
}

func (c *CalendarCache) Get(ctx context.Context, agendaID uint, anio int, mes int, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, calendarKey(agendaID, anio, mes)).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *CalendarCache) Set(ctx context.Context, agendaID uint, anio int, mes int, v any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, calendarKey(agendaID, anio, mes), raw, c.ttl).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

// Invalidate borra el mes que contiene la fecha afectada por una mutación.
func (c *CalendarCache) Invalidate(ctx context.Context, agendaID uint, fecha string) {
	if c == nil || c.rdb == nil {
		return
	}

	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return
	}

	if err := c.rdb.Del(ctx, calendarKey(agendaID, t.Year(), int(t.Month()))).Err(); err != nil && err != redis.Nil {
		log.Println("cache invalidate error:", err)
	}
}

// InvalidateAgenda borra todos los meses cacheados de una agenda.
func (c *CalendarCache) InvalidateAgenda(ctx context.Context, agendaID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := fmt.Sprintf("calendario:%d:*", agendaID)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate error:", err)
	}
}
