// Package handler is the HTTP boundary: form-encoded requests in,
// redirect-with-flash or JSON out. Page rendering is left to the
// frontend; the JSON page payloads carry what a template would need.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/apperr"
	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/flash"
	"github.com/nordqvist/webshop/internal/middleware"
	"github.com/nordqvist/webshop/internal/service"
	"github.com/nordqvist/webshop/internal/session"
	"github.com/nordqvist/webshop/internal/sitemap"
)

// maxUploadBytes bounds admin image uploads.
const maxUploadBytes = 10 << 20

// Handler translates HTTP requests into service calls.
type Handler struct {
	auth     *service.AuthService
	contact  *service.ContactService
	media    *service.MediaService
	sessions *session.Manager
	cfg      *config.Config
	log      *logrus.Logger
}

// New initializes the handler set.
func New(auth *service.AuthService, contact *service.ContactService, media *service.MediaService,
	sessions *session.Manager, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{auth: auth, contact: contact, media: media, sessions: sessions, cfg: cfg, log: log}
}

// Router wires all routes, gating the admin surface behind RequireAuth.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	// Public pages
	r.HandleFunc("/", h.page("home")).Methods("GET")
	r.HandleFunc("/about", h.page("about")).Methods("GET")
	r.HandleFunc("/contact", h.page("contact")).Methods("GET")
	r.HandleFunc("/login", h.page("login")).Methods("GET")
	r.HandleFunc("/inspiration", h.Inspiration).Methods("GET")
	r.HandleFunc("/sitemap.xml", h.Sitemap).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")

	// Auth and contact flows
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/logout", h.Logout).Methods("GET")
	r.HandleFunc("/send", h.Send).Methods("POST")

	// Admin surface; registration is admin-only (accounts are created by
	// a logged-in operator, not by visitors).
	admin := r.PathPrefix("/").Subrouter()
	admin.Use(middleware.RequireAuth(h.sessions))
	admin.HandleFunc("/register", h.page("register")).Methods("GET")
	admin.HandleFunc("/register", h.Register).Methods("POST")
	admin.HandleFunc("/admin", h.Admin).Methods("GET")
	admin.HandleFunc("/admin/images", h.ListImages).Methods("GET")
	admin.HandleFunc("/admin/images", h.UploadImage).Methods("POST")
	admin.HandleFunc("/admin/images/{id:[0-9]+}/deactivate", h.DeactivateImage).Methods("POST")

	return r
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// page serves an informational page payload plus any pending flash.
func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]string{
			"page":  name,
			"flash": flash.Pop(w, r),
		})
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Sitemap serves sitemap.xml for the public pages.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	out, err := sitemap.Build(h.cfg.BaseDomain(), sitemap.PublicPaths)
	if err != nil {
		h.log.Errorf("Failed to build sitemap: %v", err)
		http.Error(w, apperr.GenericMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(out)
}

// Inspiration serves the public gallery.
func (h *Handler) Inspiration(w http.ResponseWriter, r *http.Request) {
	images, err := h.media.ListActive(r.Context())
	if err != nil {
		h.log.Errorf("Failed to list images: %v", err)
		http.Error(w, apperr.GenericMessage, http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"page":   "inspiration",
		"flash":  flash.Pop(w, r),
		"images": images,
	})
}

// Register handles admin-driven user registration. The new user logs in
// separately; no session is established here.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	password := r.PostFormValue("password")
	if repeat := r.PostFormValue("password_repeat"); password != repeat {
		flash.Set(w, "Passwords do not match!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	_, err := h.auth.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("email"), password)
	if err != nil {
		if !errors.Is(err, apperr.ErrValidation) && !errors.Is(err, apperr.ErrConflict) {
			h.log.Errorf("Registration failed: %v", err)
		}
		flash.Set(w, apperr.UserMessage(err))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	flash.Set(w, "Registration successful! You can now log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Login authenticates and establishes the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, apperr.ErrAuthentication) {
			h.log.Errorf("Login failed: %v", err)
		}
		flash.Set(w, "Wrong email or password!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.sessions.Issue(w, user); err != nil {
		h.log.Errorf("Failed to establish session: %v", err)
		flash.Set(w, apperr.GenericMessage)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	flash.Set(w, "Login successful!")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout clears the session unconditionally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	flash.Set(w, "You have been logged out successfully.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Send handles the contact-form submission.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	_, err := h.contact.Submit(r.Context(),
		r.PostFormValue("name"), r.PostFormValue("email"),
		r.PostFormValue("phone"), r.PostFormValue("message"))
	switch {
	case err == nil:
		flash.Set(w, "Thank you! Your message has been sent successfully.")
	case errors.Is(err, apperr.ErrValidation):
		flash.Set(w, apperr.UserMessage(err))
	case errors.Is(err, apperr.ErrNotification):
		// Recorded but not relayed; the visitor still gets a success.
		flash.Set(w, "Thank you! Your message has been received.")
	default:
		h.log.Errorf("Contact submission failed: %v", err)
		flash.Set(w, "Sorry, an error occurred while sending your message. Please try again later.")
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

// Admin serves the admin dashboard payload.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]string{
		"page":  "admin",
		"flash": flash.Pop(w, r),
		"email": id.Email,
	})
}

// ListImages serves all active images for the admin gallery view.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.media.ListActive(r.Context())
	if err != nil {
		h.log.Errorf("Failed to list images: %v", err)
		http.Error(w, apperr.GenericMessage, http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// UploadImage stores a gallery image from a multipart form.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		flash.Set(w, "No file provided.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		flash.Set(w, "No file provided.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	defer file.Close()

	_, err = h.media.Upload(r.Context(), header.Filename,
		header.Header.Get("Content-Type"), r.PostFormValue("alt_text"), file)
	if err != nil {
		if !errors.Is(err, apperr.ErrValidation) {
			h.log.Errorf("Image upload failed: %v", err)
		}
		flash.Set(w, apperr.UserMessage(err))
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	flash.Set(w, "Image uploaded successfully.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeactivateImage hides an image from the public gallery.
func (h *Handler) DeactivateImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.media.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			flash.Set(w, "Image not found.")
		} else {
			h.log.Errorf("Failed to deactivate image %d: %v", id, err)
			flash.Set(w, apperr.GenericMessage)
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	flash.Set(w, "Image removed from the gallery.")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
