package handler

import (
	"fmt"
	"net/http"

	"github.com/AlexZinkM/substreams-relay/internal/model"
	"github.com/AlexZinkM/substreams-relay/internal/store"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// ResultQR handles GET /stream/qr
// @Summary      QR code of a wallet's result file
// @Description  Returns a PNG QR code encoding the absolute URL of /static/<wallet>.txt. The file does not have to exist yet.
// @Tags         substreams
// @Produce      png
// @Param        wallet  query     string  true  "0x-prefixed wallet address"
// @Success      200     {file}    binary
// @Failure      400     {object}  model.ValidationError
// @Router       /stream/qr [get]
func (h *SubstreamsHandler) ResultQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	req := &model.StreamRequest{Wallet: model.FlexString(r.URL.Query().Get("wallet"))}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, err)
		return
	}

	url := absoluteURL(r, store.PublicPath(req.Address()))

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: fmt.Sprintf("failed to generate QR code: %v", err)})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// absoluteURL builds scheme://host/path for the request, honouring X-Forwarded-Proto
func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + path
}
