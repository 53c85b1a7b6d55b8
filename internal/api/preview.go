package api

import (
	"encoding/json"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// maxPreviewBytes bounds the markdown body a preview request may carry.
const maxPreviewBytes = 64 * 1024

// Preview handles POST /api/v1/preview.
//
//	@Summary		Render a description preview
//	@Description	Renders a markdown listing description into sanitized HTML
//	@Tags			preview
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PreviewRequest	true	"Markdown source"
//	@Success		200		{object}	PreviewResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/v1/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPreviewBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.writeJSON(w, http.StatusOK, PreviewResponse{HTML: renderMarkdown(req.Markdown)})
}

// renderMarkdown converts seller-supplied markdown to HTML and sanitizes it.
func renderMarkdown(s string) string {
	extensions := blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs | blackfriday.Autolink
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	unsafe := blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer), blackfriday.WithExtensions(extensions))
	// Sanitize to prevent XSS from seller-supplied content
	return string(bluemonday.UGCPolicy().SanitizeBytes(unsafe))
}
