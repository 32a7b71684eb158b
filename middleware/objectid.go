package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireObjectID rejects requests whose {id} path variable is not a valid
// ObjectID before the handler runs, so handlers can parse it unconditionally.
func RequireObjectID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := mux.Vars(r)["id"]
		if !ok || id == "" {
			http.Error(w, "ID not provided.", http.StatusBadRequest)
			return
		}
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			http.Error(w, "Invalid ID.", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}
