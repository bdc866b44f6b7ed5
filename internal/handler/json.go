package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikolajSapek/staffer/backend/internal/repository"
	"github.com/MikolajSapek/staffer/backend/internal/staffing"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// 持久化层主动拒绝的操作，信息可以直接展示给用户
var expectedRepositoryErrors = []error{
	repository.ErrNotEnoughVacancies,
	repository.ErrApplicationsChanged,
	repository.ErrApplicationNotFound,
	repository.ErrShiftEnded,
	repository.ErrTimesheetNotPending,
	repository.ErrTimesheetNotEditable,
}

// engineError 把引擎返回的错误转换成响应，正在处理中的重复操作不提示任何错误
func (h *Handler) engineError(w http.ResponseWriter, r *http.Request, err error) {
	switch staffing.KindOf(err) {
	case staffing.KindConcurrentOperation:
		h.successResponse(w, r, "操作正在处理中", nil)
	case staffing.KindValidation, staffing.KindWindowClosed:
		h.errorResponse(w, r, err.Error())
	case staffing.KindCollaboratorFailure:
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_vacancies_check":
				h.errorResponse(w, r, repository.ErrNotEnoughVacancies.Error())
			case "worker_ratings_rating_check":
				h.errorResponse(w, r, "评分必须在 1 到 5 之间")
			default:
				h.logInternalServerError(r, err)
				h.errorResponse(w, r, err.Error())
			}
		default:
			for _, expected := range expectedRepositoryErrors {
				if errors.Is(err, expected) {
					h.errorResponse(w, r, err.Error())
					return
				}
			}
			h.logInternalServerError(r, err)
			h.errorResponse(w, r, err.Error())
		}
	default:
		h.internalServerError(w, r, err)
	}
}
