// Package middleware HTTP middleware: идентификация вызывающего, метрики, ограничение частоты
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-MillService/internal/domain"
)

const (
	// HeaderUserID ID пользователя, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя: customer или staff
	HeaderUserRole = "X-User-Role"
)

type contextKey string

const actorKey contextKey = "actor"

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Auth читает X-User-ID и X-User-Role и кладёт domain.Actor в контекст.
// Без роли пользователь считается клиентом.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if rawID == "" {
			respond(w, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			respond(w, http.StatusUnauthorized, "invalid "+HeaderUserID+" header")
			return
		}

		role := domain.RoleCustomer
		if rawRole := strings.TrimSpace(r.Header.Get(HeaderUserRole)); rawRole != "" {
			role, err = domain.ParseActorRole(strings.ToLower(rawRole))
			if err != nil {
				respond(w, http.StatusUnauthorized, "invalid "+HeaderUserRole+" header")
				return
			}
		}

		ctx := WithActor(r.Context(), domain.Actor{Role: role, ID: id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff пропускает только сотрудников; ставится после Auth
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			respond(w, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}
		if !actor.IsStaff() {
			respond(w, http.StatusForbidden, "staff role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor кладёт вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достаёт вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID ID вызывающего
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.ID, ok
}

func respond(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: status, Message: message})
}
