package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dchest/captcha"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"bizsite/auth"
	"bizsite/content"
	"bizsite/i18n"
	"bizsite/storage"
)

const maxBodyBytes = 1 << 20

type APIResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Options tune the API beyond its stores.
type Options struct {
	// RequireCaptcha makes the recover endpoints demand a solved captcha.
	RequireCaptcha bool
}

// Handler serves the JSON API. The admin record and the site content are
// shared by every client; the session flag lives in each browser's cookie.
type Handler struct {
	creds   *auth.CredentialStore
	content *content.Store
	cookies sessions.Store
	logger  *zap.Logger
	opts    Options

	loginLimiter   *rateLimiter
	setupLimiter   *rateLimiter
	recoverLimiter *rateLimiter
}

func New(creds *auth.CredentialStore, contentStore *content.Store, cookies sessions.Store, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		creds:          creds,
		content:        contentStore,
		cookies:        cookies,
		logger:         logger,
		opts:           opts,
		loginLimiter:   newRateLimiter(),
		setupLimiter:   newRateLimiter(),
		recoverLimiter: newRateLimiter(),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/content", h.ContentHandler)
	mux.HandleFunc("/api/v1/admin/status", h.StatusHandler)
	mux.HandleFunc("/api/v1/admin/setup", h.SetupHandler)
	mux.HandleFunc("/api/v1/admin/login", h.LoginHandler)
	mux.HandleFunc("/api/v1/admin/logout", h.LogoutHandler)
	mux.HandleFunc("/api/v1/admin/recover/verify", h.RecoverVerifyHandler)
	mux.HandleFunc("/api/v1/admin/recover", h.RecoverHandler)
	mux.HandleFunc("/api/v1/admin/info", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetInfoHandler(w, r)
		case http.MethodPut:
			h.UpdateInfoHandler(w, r)
		default:
			h.methodNotAllowed(w, r)
		}
	})
	mux.HandleFunc("/api/v1/admin/content", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.SaveContentHandler(w, r)
		case http.MethodPatch:
			h.PatchContentHandler(w, r)
		case http.MethodDelete:
			h.ResetContentHandler(w, r)
		default:
			h.methodNotAllowed(w, r)
		}
	})
	mux.HandleFunc("/api/v1/captcha/new", h.NewCaptchaHandler)
	mux.Handle("/captcha/", captcha.Server(captcha.StdWidth, captcha.StdHeight))
}

// Routes wraps the API in its middleware chain. csrfKey must be 32 bytes.
func (h *Handler) Routes(csrfKey []byte, secure bool) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)

	var handler http.Handler = mux
	handler = CSRFMiddleware(csrfKey, secure)(handler)
	handler = SecurityHeadersMiddleware(handler)
	handler = CORSMiddleware(handler)
	return LoggingMiddleware(h.logger)(handler)
}

// browser binds the credential store to the caller's session cookie.
func (h *Handler) browser(w http.ResponseWriter, r *http.Request) *auth.CredentialStore {
	return h.creds.ForSession(storage.NewSession(h.cookies, auth.SessionName, w, r))
}

// requireAdmin answers 401 and returns false unless the caller holds an
// unexpired session.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.CredentialStore, bool) {
	creds := h.browser(w, r)
	ok, err := creds.IsAuthenticated()
	if err != nil {
		h.internalError(w, r, err)
		return nil, false
	}
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return creds, true
}

func sendJSONResponse(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) succeed(w http.ResponseWriter, r *http.Request, status int, code string, data any) {
	resp := APIResponse{Status: "success", Data: data}
	if code != "" {
		resp.Code = code
		resp.Message = i18n.T(i18n.DetectLanguage(r), code)
	}
	sendJSONResponse(w, status, resp)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	sendJSONResponse(w, status, APIResponse{
		Status:  "error",
		Code:    code,
		Message: i18n.T(i18n.DetectLanguage(r), code),
	})
}

type problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// failValidation lists every problem, each with a localized message.
func (h *Handler) failValidation(w http.ResponseWriter, r *http.Request, err error) {
	var verr *auth.ValidationError
	if !errors.As(err, &verr) {
		h.internalError(w, r, err)
		return
	}
	lang := i18n.DetectLanguage(r)
	problems := make([]problem, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		problems = append(problems, problem{Code: p, Message: i18n.T(lang, p)})
	}
	sendJSONResponse(w, http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    "ValidationFailed",
		Message: i18n.T(lang, "ValidationFailed"),
		Data:    map[string]any{"problems": problems},
	})
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	h.fail(w, r, http.StatusInternalServerError, "InternalError")
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, http.StatusMethodNotAllowed, "MethodNotAllowed")
}

// decode reads a JSON body into v, answering 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		h.fail(w, r, http.StatusBadRequest, "InvalidRequestBody")
		return false
	}
	return true
}

func (h *Handler) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		h.methodNotAllowed(w, r)
		return false
	}
	return true
}
