package handler

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.repository.Ping(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(r.Context()).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "服务运行正常", nil)
}
