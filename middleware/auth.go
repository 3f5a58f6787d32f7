package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceAuth verifica o token de serviço fixo enviado pelo formulário,
// quer no cabeçalho Authorization (Bearer) quer no cabeçalho Apikey
func ServiceAuth(serviceToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			token = strings.TrimPrefix(token, "Bearer ")
			if token == "" {
				token = r.Header.Get("Apikey")
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(serviceToken)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   "Não autorizado",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthMiddleware verifica o token JWT dos agentes e coloca a identidade
// no contexto do pedido
func AuthMiddleware(jwtKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Obtemos o token do cabeçalho
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, "Cabeçalho Authorization é obrigatório", http.StatusUnauthorized)
				return
			}

			// Retiramos o prefixo "Bearer " se existir
			if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
				tokenString = tokenString[7:]
			}

			// Analisamos e verificamos o token
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
				}
				return jwtKey, nil
			})

			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}

			// Verificamos as claims
			if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
				agentID, ok := claims["agent_id"].(float64)
				if !ok {
					http.Error(w, "agent_id inválido no token", http.StatusUnauthorized)
					return
				}

				email, _ := claims["email"].(string)

				ctx := r.Context()
				ctx = context.WithValue(ctx, "agent_id", uint(agentID))
				ctx = context.WithValue(ctx, "email", email)
				r = r.WithContext(ctx)
			} else {
				http.Error(w, "Claims do token inválidas", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetAgentFromContext obtém a identidade do agente do contexto
func GetAgentFromContext(r *http.Request) (uint, string, error) {
	agentID, ok := r.Context().Value("agent_id").(uint)
	if !ok {
		return 0, "", fmt.Errorf("agent_id não encontrado no contexto")
	}

	email, ok := r.Context().Value("email").(string)
	if !ok {
		return 0, "", fmt.Errorf("email não encontrado no contexto")
	}

	return agentID, email, nil
}
