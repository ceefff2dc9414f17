package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"bizsite/auth"
	"bizsite/content"
)

// ContentHandler serves the public site document.
func (h *Handler) ContentHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) {
		return
	}
	h.succeed(w, r, http.StatusOK, "", h.content.Load())
}

type statusData struct {
	Exists        bool       `json:"exists"`
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// StatusHandler tells the admin UI which screen to show: setup when there is
// no account, login when there is no valid session, the panel otherwise.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodGet) {
		return
	}
	creds := h.browser(w, r)

	exists, err := creds.Exists()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	authed, err := creds.IsAuthenticated()
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	data := statusData{Exists: exists, Authenticated: authed}
	if authed {
		if flag, ok, _ := creds.Session(); ok {
			expires := flag.SessionStart.Add(creds.SessionTTL()).UTC()
			data.ExpiresAt = &expires
		}
	}
	if token := csrf.Token(r); token != "" {
		w.Header().Set("X-CSRF-Token", token)
	}
	h.succeed(w, r, http.StatusOK, "", data)
}

func (h *Handler) SetupHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}
	ip := getClientIP(r)
	if !h.setupLimiter.Allow(ip) {
		h.fail(w, r, http.StatusTooManyRequests, "TooManyAttempts")
		return
	}

	var input struct {
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
	}
	if !h.decode(w, r, &input) {
		return
	}

	creds := h.browser(w, r)
	exists, err := creds.Exists()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if exists {
		h.setupLimiter.RecordFailure(ip)
		h.fail(w, r, http.StatusConflict, "AdminAlreadyExists")
		return
	}
	if err := auth.ValidateSetup(input.Username, input.Password, input.ConfirmPassword, input.Email, input.Phone); err != nil {
		h.failValidation(w, r, err)
		return
	}

	if err := creds.Create(input.Username, input.Password, input.Email, input.Phone); err != nil {
		if errors.Is(err, auth.ErrAlreadyExists) {
			h.fail(w, r, http.StatusConflict, "AdminAlreadyExists")
			return
		}
		h.internalError(w, r, err)
		return
	}
	if _, err := creds.Login(input.Username, input.Password); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.succeed(w, r, http.StatusCreated, "", map[string]any{"username": input.Username})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}
	ip := getClientIP(r)
	if !h.loginLimiter.Allow(ip) {
		h.fail(w, r, http.StatusTooManyRequests, "TooManyAttempts")
		return
	}

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !h.decode(w, r, &input) {
		return
	}

	ok, err := h.browser(w, r).Login(input.Username, input.Password)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		h.loginLimiter.RecordFailure(ip)
		h.logger.Info("Admin login failed", zap.String("ip", ip))
		h.fail(w, r, http.StatusUnauthorized, "InvalidCredentials")
		return
	}
	h.loginLimiter.Reset(ip)
	h.succeed(w, r, http.StatusOK, "", map[string]any{"username": input.Username})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.browser(w, r).Logout(); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.succeed(w, r, http.StatusOK, "LoggedOut", nil)
}

type recoverInput struct {
	Username        string `json:"username"`
	EmailOrPhone    string `json:"email_or_phone"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
	CaptchaID       string `json:"captcha_id"`
	CaptchaSolution string `json:"captcha_solution"`
}

// recoverPreamble applies the checks shared by both recovery steps.
func (h *Handler) recoverPreamble(w http.ResponseWriter, r *http.Request, input *recoverInput) (string, bool) {
	if !h.allowMethod(w, r, http.MethodPost) {
		return "", false
	}
	ip := getClientIP(r)
	if !h.recoverLimiter.Allow(ip) {
		h.fail(w, r, http.StatusTooManyRequests, "TooManyAttempts")
		return "", false
	}
	if !h.decode(w, r, input) {
		return "", false
	}
	if h.opts.RequireCaptcha && !verifyCaptcha(input.CaptchaID, input.CaptchaSolution) {
		h.recoverLimiter.RecordFailure(ip)
		h.fail(w, r, http.StatusBadRequest, "InvalidCaptcha")
		return "", false
	}
	exists, err := h.creds.Exists()
	if err != nil {
		h.internalError(w, r, err)
		return "", false
	}
	if !exists {
		h.fail(w, r, http.StatusNotFound, "AdminNotFound")
		return "", false
	}
	return ip, true
}

// RecoverVerifyHandler is the first recovery step: it confirms the username
// and contact and shows masked contact details.
func (h *Handler) RecoverVerifyHandler(w http.ResponseWriter, r *http.Request) {
	var input recoverInput
	ip, ok := h.recoverPreamble(w, r, &input)
	if !ok {
		return
	}

	hint, ok, err := h.creds.VerifyContact(input.Username, input.EmailOrPhone)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		h.recoverLimiter.RecordFailure(ip)
		h.fail(w, r, http.StatusUnauthorized, "VerificationFailed")
		return
	}
	h.succeed(w, r, http.StatusOK, "", hint)
}

// RecoverHandler sets a new password. The contact must match the stored
// email or phone exactly.
func (h *Handler) RecoverHandler(w http.ResponseWriter, r *http.Request) {
	var input recoverInput
	ip, ok := h.recoverPreamble(w, r, &input)
	if !ok {
		return
	}
	if err := auth.ValidatePassword(input.NewPassword, input.ConfirmPassword); err != nil {
		h.failValidation(w, r, err)
		return
	}

	ok, err := h.creds.ResetPassword(input.Username, input.EmailOrPhone, input.NewPassword)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		h.recoverLimiter.RecordFailure(ip)
		h.fail(w, r, http.StatusUnauthorized, "VerificationFailed")
		return
	}
	h.recoverLimiter.Reset(ip)
	h.succeed(w, r, http.StatusOK, "PasswordReset", nil)
}

func (h *Handler) GetInfoHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	rec, ok, err := creds.Admin()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, http.StatusNotFound, "AdminNotFound")
		return
	}
	h.succeed(w, r, http.StatusOK, "", map[string]any{
		"username":   rec.Username,
		"email":      rec.Email,
		"phone":      rec.Phone,
		"created_at": rec.CreatedAt,
	})
}

func (h *Handler) UpdateInfoHandler(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	var input struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !h.decode(w, r, &input) {
		return
	}
	if err := auth.ValidateContact(input.Email, input.Phone); err != nil {
		h.failValidation(w, r, err)
		return
	}

	updated, err := creds.UpdateInfo(input.Email, input.Phone)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if !updated {
		h.fail(w, r, http.StatusNotFound, "AdminNotFound")
		return
	}
	h.succeed(w, r, http.StatusOK, "InfoUpdated", nil)
}

// SaveContentHandler replaces the whole document.
func (h *Handler) SaveContentHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	var cfg content.BusinessConfig
	if err := dec.Decode(&cfg); err != nil {
		h.fail(w, r, http.StatusBadRequest, "InvalidValue")
		return
	}
	if err := h.content.Save(cfg); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.succeed(w, r, http.StatusOK, "ContentSaved", cfg)
}

// PatchContentHandler sets one field by dotted path and saves the result.
func (h *Handler) PatchContentHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	var input struct {
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value"`
	}
	if !h.decode(w, r, &input) {
		return
	}

	var value any
	dec := json.NewDecoder(bytes.NewReader(input.Value))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		h.fail(w, r, http.StatusBadRequest, "InvalidValue")
		return
	}

	cfg, err := content.ApplyPath(h.content.Load(), input.Path, value)
	switch {
	case errors.Is(err, content.ErrTypeMismatch):
		h.fail(w, r, http.StatusBadRequest, "InvalidValue")
		return
	case err != nil:
		h.fail(w, r, http.StatusBadRequest, "InvalidPath")
		return
	}
	if err := h.content.Save(cfg); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.succeed(w, r, http.StatusOK, "ContentSaved", cfg)
}

// ResetContentHandler drops the saved document in favor of the defaults.
func (h *Handler) ResetContentHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	if err := h.content.Reset(); err != nil {
		h.internalError(w, r, err)
		return
	}
	h.succeed(w, r, http.StatusOK, "ContentReset", h.content.Load())
}
