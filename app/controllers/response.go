package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"portfolio/app/logger"
)

// maxBodyBytes caps request bodies, including comment imports.
const maxBodyBytes = 1 << 20

// base carries the response helpers shared by every controller.
type base struct {
	log logger.Logger
}

func (b *base) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.log.Warn("Failed to write response", logger.Error(err))
	}
}

func (b *base) sendError(w http.ResponseWriter, message string, status int) {
	b.sendJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads a JSON body into v, rejecting unknown fields and oversized bodies.
func (b *base) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			b.sendError(w, "Request body is empty", http.StatusBadRequest)
		} else {
			b.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		}
		return false
	}
	return true
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + key + " parameter")
	}
	return n, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
