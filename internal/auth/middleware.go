package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUserID ctxKey = "usuarioID"
	CtxEmail  ctxKey = "email"
	CtxPapel  ctxKey = "papel"
)

// UsuarioDoContexto extrai id e papel do usuário autenticado.
func UsuarioDoContexto(ctx context.Context) (string, Papel) {
	id, _ := ctx.Value(CtxUserID).(string)
	papel, _ := ctx.Value(CtxPapel).(Papel)
	return id, papel
}

// EmailDoContexto extrai o e-mail do usuário autenticado. Vem do token,
// nunca de parâmetro da requisição.
func EmailDoContexto(ctx context.Context) string {
	email, _ := ctx.Value(CtxEmail).(string)
	return email
}

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxEmail, claims.Email)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireEquipe bloqueia chamadas de quem não é admin nem atendente.
func RequireEquipe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, papel := UsuarioDoContexto(r.Context())
		if !papel.Equipe() {
			http.Error(w, "Acesso restrito à equipe", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, papel := UsuarioDoContexto(r.Context())
		if papel != PapelAdmin {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
