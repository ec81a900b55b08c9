package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/server/auth"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

const maxBodyBytes = 32 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Secret string `json:"secret"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type uploadRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	EncryptedData string `json:"encryptedData"`
	UserID        string `json:"user_id"`
}

type downloadResponse struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	EncryptedData string `json:"encryptedData"`
}

type activityRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatRequest struct {
	User    string           `json:"user"`
	Avatar  string           `json:"avatar"`
	Text    string           `json:"text"`
	Sent    bool             `json:"sent"`
	File    *models.ChatFile `json:"file,omitempty"`
	ReplyTo int64            `json:"replyTo,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors that carry no endpoint specific
// message to a status code.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, "Already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeMessage(w, http.StatusConflict, "User already exists")
			return
		case errors.Is(err, auth.ErrPasswordTooLong):
			writeMessage(w, http.StatusBadRequest, "Password too long")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Secret == "" {
		writeMessage(w, http.StatusBadRequest, "Secret is required")
		return
	}

	token, err := s.users.AdminLogin(r.Context(), req.Secret)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid secret")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Old and new password are required")
		return
	}

	err := s.users.ChangePassword(r.Context(), claims.Email, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
			return
		case errors.Is(err, auth.ErrPasswordTooLong):
			writeMessage(w, http.StatusBadRequest, "Password too long")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) listFiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.files.GetFiles(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.EncryptedData == "" {
		writeMessage(w, http.StatusBadRequest, "File name and encrypted data are required")
		return
	}

	upload := services.UploadRequest{
		Name:          req.Name,
		Description:   req.Description,
		EncryptedData: req.EncryptedData,
		UserID:        req.UserID,
	}
	if claims, ok := claimsFromContext(r.Context()); ok {
		if upload.UserID == "" {
			upload.UserID = claims.Email
		}
		upload.Admin = claims.Role == common.RoleAdmin
	}

	_, err := s.files.AddFile(r.Context(), upload)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			writeMessage(w, http.StatusConflict, "File with this name already exists")
		case errors.Is(err, common.ErrorValidation):
			writeMessage(w, http.StatusBadRequest, "Encrypted data must be base64")
		default:
			s.writeServiceError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "File uploaded successfully")
}

func (s *HTTPServer) download(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "File name is required")
		return
	}

	f, err := s.files.GetFile(r.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "File not found")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, downloadResponse{Name: f.Name, Description: f.Description, EncryptedData: f.EncryptedData})
}

func (s *HTTPServer) activityLog(w http.ResponseWriter, r *http.Request) {
	list, err := s.activity.ReadAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) appendActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	kind := models.ActivityKind(req.Type)
	if req.Text == "" || !kind.Valid() {
		writeMessage(w, http.StatusBadRequest, "Type and text are required")
		return
	}

	if err := s.activity.Append(r.Context(), kind, req.Text); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Activity logged")
}

func (s *HTTPServer) chatMessages(w http.ResponseWriter, r *http.Request) {
	list, err := s.chat.Messages(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) sendChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.chat.Send(r.Context(), services.SendRequest{
		User:    req.User,
		Avatar:  req.Avatar,
		Text:    req.Text,
		Sent:    req.Sent,
		File:    req.File,
		ReplyTo: req.ReplyTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeMessage(w, http.StatusBadRequest, "Text or file is required")
		case errors.Is(err, common.ErrorNotFound):
			writeMessage(w, http.StatusBadRequest, "Reply target not found")
		default:
			s.writeServiceError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
