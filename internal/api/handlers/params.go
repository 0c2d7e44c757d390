package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PathID читает положительный int64 из переменной пути name.
// Возвращает исходную строку для логов и false, если значение некорректно.
func PathID(r *http.Request, name string) (int64, string, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, raw, false
	}
	return id, raw, true
}
