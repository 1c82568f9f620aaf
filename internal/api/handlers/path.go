package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Переменные маршрута ключа слота
const (
	VarDay      = "day"
	VarCategory = "category"
	VarTime     = "time"
)

// SlotKeyPath компоненты ключа слота из пути запроса (уже раскодированные mux)
type SlotKeyPath struct {
	Day      string
	Category string
	Time     string
}

// SlotKeyFromPath извлекает ключ слота из /slots/{day}/{category}/{time}/...
func SlotKeyFromPath(r *http.Request) SlotKeyPath {
	vars := mux.Vars(r)
	return SlotKeyPath{
		Day:      vars[VarDay],
		Category: vars[VarCategory],
		Time:     vars[VarTime],
	}
}
