package handler

import (
	"net/http"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
