package handlers

import (
	"net/http"

	"github.com/dchest/captcha"
)

// NewCaptchaHandler issues a captcha for the password recovery form. The
// image is served by captcha.Server under /captcha/.
func (h *Handler) NewCaptchaHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}
	id := captcha.New()
	h.succeed(w, r, http.StatusCreated, "", map[string]string{
		"captcha_id": id,
		"image_url":  "/captcha/" + id + ".png",
	})
}

func verifyCaptcha(id, solution string) bool {
	if id == "" || solution == "" {
		return false
	}
	return captcha.VerifyString(id, solution)
}
