package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type imageGenerateRequest struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// ImagesGenerate is a metered image action. It renders a branded SVG
// placeholder locally; real provider rendering lives outside this service.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if a.Store == nil {
		a.error(w, http.StatusServiceUnavailable, "storage_unavailable", "asset storage not configured")
		return
	}

	plan := a.currentPlan(r.Context(), userID)
	decision, err := a.Gate.Consume(r.Context(), userID, plan, domain.ActionImage)
	if err != nil {
		a.error(w, http.StatusServiceUnavailable, "quota_unavailable", "could not verify quota")
		return
	}
	if !decision.Allowed {
		a.error(w, http.StatusForbidden, "quota_exceeded", "monthly image quota exceeded")
		return
	}

	data := placeholderSVG(req.Label, req.Color)
	asset := domain.Asset{
		ID:       uuid.NewString(),
		UserID:   userID,
		MimeType: "image/svg+xml",
		Bytes:    int64(len(data)),
	}
	key, err := a.Store.Write(r.Context(), fmt.Sprintf("images/%s/%s.svg", userID, asset.ID), data)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to write placeholder asset")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store asset")
		return
	}
	asset.StorageKey = key

	var storedID string
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertAsset, asset.ID, asset.UserID, asset.StorageKey, asset.MimeType, asset.Bytes)
	if err := row.Scan(&storedID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to record asset")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"id":              storedID,
		"storage_key":     asset.StorageKey,
		"url":             strings.TrimRight(a.Cfg.StorageBaseURL, "/") + "/" + asset.StorageKey,
		"mime_type":       asset.MimeType,
		"bytes":           asset.Bytes,
		"remaining_quota": remainingQuota(decision),
	})
}

// placeholderSVG renders the synthetic asset used when no image provider is
// wired: a flat card with the label centered.
func placeholderSVG(label, color string) []byte {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "Scheduled post"
	}
	color = strings.TrimSpace(color)
	if color == "" || !validHexColor(color) {
		color = "#4A6CF7"
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="1080" height="1080">`+
		`<rect width="100%%" height="100%%" fill="%s"/>`+
		`<text x="540" y="540" font-family="sans-serif" font-size="48" fill="#FFFFFF" text-anchor="middle">%s</text>`+
		`</svg>`, color, escapeXML(label))
	return []byte(svg)
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
